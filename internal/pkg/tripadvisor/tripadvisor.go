// Package tripadvisor is a thin client for the TripAdvisor Content API,
// used by the enrichment job to look up attractions per city.
package tripadvisor

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/wanderbase/wanderbase/internal/app/common"
	"github.com/wanderbase/wanderbase/internal/app/models"
	"github.com/wanderbase/wanderbase/internal/pkg/config"
)

const serviceName = "tripadvisor"

// Client calls the Content API. Detail lookups are cached because the
// enrichment job may revisit the same location across runs.
type Client struct {
	logger     *zap.Logger
	apiKey     string
	baseURL    string
	httpClient *http.Client
	cache      *cache.Cache
	titler     cases.Caser
}

func NewClient(cfg config.TripAdvisorConfig, logger *zap.Logger) *Client {
	return &Client{
		logger:     logger,
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		cache:      cache.New(30*time.Minute, 10*time.Minute),
		titler:     cases.Title(language.English),
	}
}

type searchResponse struct {
	Data []struct {
		LocationID string `json:"location_id"`
		Name       string `json:"name"`
		AddressObj struct {
			Street1       string `json:"street1"`
			City          string `json:"city"`
			Country       string `json:"country"`
			Postalcode    string `json:"postalcode"`
			AddressString string `json:"address_string"`
		} `json:"address_obj"`
	} `json:"data"`
}

type detailsResponse struct {
	LocationID  string `json:"location_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Rating      string `json:"rating"`
	NumReviews  string `json:"num_reviews"`
	PriceLevel  string `json:"price_level"`
	Latitude    string `json:"latitude"`
	Longitude   string `json:"longitude"`
	AddressObj  struct {
		Street1       string `json:"street1"`
		City          string `json:"city"`
		Country       string `json:"country"`
		Postalcode    string `json:"postalcode"`
		AddressString string `json:"address_string"`
	} `json:"address_obj"`
	Hours struct {
		WeekdayText []string `json:"weekday_text"`
	} `json:"hours"`
	Amenities []string `json:"amenities"`
	Category  struct {
		Name string `json:"name"`
	} `json:"category"`
}

type photosResponse struct {
	Data []struct {
		Images struct {
			Large struct {
				URL string `json:"url"`
			} `json:"large"`
			Original struct {
				URL string `json:"url"`
			} `json:"original"`
		} `json:"images"`
	} `json:"data"`
}

// SearchAttractions looks up attractions for a city. Results carry only
// the fields the search endpoint returns; callers enrich via
// LocationDetails when they need descriptions and ratings.
func (c *Client) SearchAttractions(ctx context.Context, city, country string) ([]models.Activity, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("searchQuery", fmt.Sprintf("%s, %s", city, country))
	params.Set("category", "attractions")
	params.Set("language", "en")

	var resp searchResponse
	if err := c.getJSON(ctx, "/location/search", params, &resp); err != nil {
		return nil, err
	}

	activities := make([]models.Activity, 0, len(resp.Data))
	for _, item := range resp.Data {
		activities = append(activities, models.Activity{
			ID:   item.LocationID,
			Name: c.titler.String(item.Name),
			Address: &models.ActivityAddress{
				Street:    item.AddressObj.Street1,
				City:      item.AddressObj.City,
				Country:   item.AddressObj.Country,
				Postcode:  item.AddressObj.Postalcode,
				Formatted: item.AddressObj.AddressString,
			},
		})
	}

	c.logger.Debug("TripAdvisor search completed",
		zap.String("city", city),
		zap.Int("results", len(activities)))
	return activities, nil
}

// LocationDetails fetches the full record for a location. Responses are
// cached by location id.
func (c *Client) LocationDetails(ctx context.Context, locationID string) (*models.Activity, error) {
	cacheKey := "details:" + locationID
	if cached, ok := c.cache.Get(cacheKey); ok {
		activity := cached.(models.Activity)
		return &activity, nil
	}

	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("language", "en")

	var resp detailsResponse
	endpoint := fmt.Sprintf("/location/%s/details", locationID)
	if err := c.getJSON(ctx, endpoint, params, &resp); err != nil {
		return nil, err
	}

	activity := models.Activity{
		ID:          resp.LocationID,
		Name:        c.titler.String(resp.Name),
		Category:    resp.Category.Name,
		Description: resp.Description,
		Rating:      parseFloat(resp.Rating),
		ReviewCount: parseInt(resp.NumReviews),
		PriceLevel:  resp.PriceLevel,
		Hours:       resp.Hours.WeekdayText,
		Amenities:   resp.Amenities,
		Address: &models.ActivityAddress{
			Street:    resp.AddressObj.Street1,
			City:      resp.AddressObj.City,
			Country:   resp.AddressObj.Country,
			Postcode:  resp.AddressObj.Postalcode,
			Formatted: resp.AddressObj.AddressString,
		},
	}
	if lat, lng := parseFloat(resp.Latitude), parseFloat(resp.Longitude); lat != 0 || lng != 0 {
		activity.Coordinates = &models.ActivityCoordinates{Latitude: lat, Longitude: lng}
	}

	c.cache.Set(cacheKey, activity, cache.DefaultExpiration)
	return &activity, nil
}

// LocationPhotos returns photo URLs for a location, preferring the large
// rendition.
func (c *Client) LocationPhotos(ctx context.Context, locationID string) ([]string, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("language", "en")

	var resp photosResponse
	endpoint := fmt.Sprintf("/location/%s/photos", locationID)
	if err := c.getJSON(ctx, endpoint, params, &resp); err != nil {
		return nil, err
	}

	photos := make([]string, 0, len(resp.Data))
	for _, item := range resp.Data {
		photoURL := item.Images.Large.URL
		if photoURL == "" {
			photoURL = item.Images.Original.URL
		}
		if photoURL != "" {
			photos = append(photos, photoURL)
		}
	}
	return photos, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &common.ExternalAPIError{Service: serviceName, Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		c.logger.Warn("TripAdvisor returned non-2xx status",
			zap.String("endpoint", endpoint),
			zap.Int("status", resp.StatusCode))
		return &common.ExternalAPIError{Service: serviceName, Endpoint: endpoint, Status: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &common.ExternalAPIError{Service: serviceName, Endpoint: endpoint, Err: fmt.Errorf("invalid response body: %w", err)}
	}
	return nil
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return v
}

func parseInt(s string) int {
	v, _ := strconv.Atoi(strings.TrimSpace(s))
	return v
}
