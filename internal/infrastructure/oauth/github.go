package oauth

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gdugdh24/insightsphere-backend/internal/domain"
	"github.com/gdugdh24/insightsphere-backend/internal/usecase/auth"
	"github.com/goccy/go-json"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
)

const githubAPI = "https://api.github.com"

// GitHubVerifier exchanges an OAuth authorization code and reads the
// account's id and primary verified email.
type GitHubVerifier struct {
	conf    *oauth2.Config
	apiBase string
}

func NewGitHubVerifier(clientID, clientSecret string) *GitHubVerifier {
	return &GitHubVerifier{
		conf: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     github.Endpoint,
			Scopes:       []string{"read:user", "user:email"},
		},
		apiBase: githubAPI,
	}
}

type githubUser struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

type githubEmail struct {
	Email    string `json:"email"`
	Primary  bool   `json:"primary"`
	Verified bool   `json:"verified"`
}

func (v *GitHubVerifier) Verify(ctx context.Context, code string) (*auth.ExternalIdentity, error) {
	token, err := v.conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	client := v.conf.Client(ctx, token)

	var user githubUser
	if err := v.get(ctx, client, "/user", &user); err != nil {
		return nil, err
	}

	email := user.Email
	if email == "" {
		var emails []githubEmail
		if err := v.get(ctx, client, "/user/emails", &emails); err != nil {
			return nil, err
		}
		for _, e := range emails {
			if e.Primary && e.Verified {
				email = e.Email
				break
			}
		}
	}

	return &auth.ExternalIdentity{Email: email, ProviderUserID: strconv.FormatInt(user.ID, 10)}, nil
}

func (v *GitHubVerifier) get(ctx context.Context, client *http.Client, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.apiBase+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("github %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("github %s: status %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
