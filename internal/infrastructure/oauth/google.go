package oauth

import (
	"context"
	"fmt"

	"github.com/gdugdh24/insightsphere-backend/internal/domain"
	"github.com/gdugdh24/insightsphere-backend/internal/usecase/auth"
	"google.golang.org/api/idtoken"
)

// GoogleVerifier validates Google Sign-In ID tokens issued for clientID.
type GoogleVerifier struct {
	clientID string
	validate func(ctx context.Context, token, audience string) (*idtoken.Payload, error)
}

func NewGoogleVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{clientID: clientID, validate: idtoken.Validate}
}

func (v *GoogleVerifier) Verify(ctx context.Context, credential string) (*auth.ExternalIdentity, error) {
	payload, err := v.validate(ctx, credential, v.clientID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}

	email, _ := payload.Claims["email"].(string)
	if verified, ok := payload.Claims["email_verified"].(bool); ok && !verified {
		email = ""
	}
	return &auth.ExternalIdentity{Email: email, ProviderUserID: payload.Subject}, nil
}
