package google

import (
	"context"
	"errors"
	"fmt"

	"github.com/vncsmyrnk/playervote/internal/core/ports"
	"google.golang.org/api/idtoken"
)

type GoogleVerifier struct{}

func NewVerifier() ports.TokenVerifier {
	return &GoogleVerifier{}
}

func (v *GoogleVerifier) Verify(ctx context.Context, token string, clientID string) (*ports.TokenPayload, error) {
	payload, err := idtoken.Validate(ctx, token, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to validate id token: %w", err)
	}
	return payloadFromClaims(payload.Subject, payload.Claims)
}

func payloadFromClaims(subject string, claims map[string]interface{}) (*ports.TokenPayload, error) {
	if subject == "" {
		return nil, errors.New("subject not found in token")
	}
	email, ok := claims["email"].(string)
	if !ok {
		return nil, errors.New("email not found in claims")
	}
	// name is absent for accounts without a public profile
	name, _ := claims["name"].(string)
	return &ports.TokenPayload{Subject: subject, Email: email, Name: name}, nil
}
