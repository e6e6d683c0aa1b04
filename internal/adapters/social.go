package adapters

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/example/kpi-dashboard/internal/config"
	"github.com/example/kpi-dashboard/internal/models"
)

// ErrMissingBearerToken is returned before any network attempt when the
// social source has no credential configured.
var ErrMissingBearerToken = errors.New("missing TWITTER_BEARER_TOKEN")

const socialNote = "profile id only; engagement endpoints not wired"

// SocialClient resolves a username to its numeric id. That is all it does:
// the engagement side of the feature was never built upstream and is kept
// partial on purpose.
type SocialClient struct {
	client  *http.Client
	baseURL string
	token   string
}

func NewSocialClient(cfg config.Config, client *http.Client) *SocialClient {
	return &SocialClient{
		client:  client,
		baseURL: cfg.TwitterBaseURL,
		token:   cfg.TwitterBearerToken,
	}
}

type userLookupResponse struct {
	Data struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Username string `json:"username"`
	} `json:"data"`
}

func (s *SocialClient) FetchSocialProfile(ctx context.Context, username string) (models.SocialProfile, error) {
	if s.token == "" {
		return models.SocialProfile{}, ErrMissingBearerToken
	}

	u := fmt.Sprintf("%s/2/users/by/username/%s", s.baseURL, url.PathEscape(username))
	header := http.Header{"Authorization": []string{"Bearer " + s.token}}

	var body userLookupResponse
	if err := getJSON(ctx, s.client, u, header, &body); err != nil {
		return models.SocialProfile{}, err
	}
	if body.Data.ID == "" {
		return models.SocialProfile{}, fmt.Errorf("user %q: %w", username, ErrNoData)
	}

	return models.SocialProfile{
		Username: username,
		ID:       body.Data.ID,
		Note:     socialNote,
	}, nil
}
