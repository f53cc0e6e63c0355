// services/places.go
package services

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"fieldpro-backend/utils"
)

// PlaceResult is the subset of Google Places fields the CRM needs to set
// up a tenant's review link.
type PlaceResult struct {
	PlaceID          string  `json:"placeId"`
	Name             string  `json:"name"`
	FormattedAddress string  `json:"formattedAddress"`
	Rating           float64 `json:"rating"`
	ReviewLink       string  `json:"reviewLink"`
}

// PlacesClient looks businesses up by place id or free-text query. The
// base URL is a field so tests can point it at a local server.
type PlacesClient struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

func NewPlacesClient() *PlacesClient {
	return &PlacesClient{
		BaseURL: "https://maps.googleapis.com/maps/api/place",
		APIKey:  os.Getenv("GOOGLE_PLACES_API_KEY"),
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

type placeDetailsResponse struct {
	Status string `json:"status"`
	Result struct {
		PlaceID          string  `json:"place_id"`
		Name             string  `json:"name"`
		FormattedAddress string  `json:"formatted_address"`
		Rating           float64 `json:"rating"`
	} `json:"result"`
}

type placeSearchResponse struct {
	Status  string `json:"status"`
	Results []struct {
		PlaceID          string  `json:"place_id"`
		Name             string  `json:"name"`
		FormattedAddress string  `json:"formatted_address"`
		Rating           float64 `json:"rating"`
	} `json:"results"`
}

// LookupByID fetches place details for a known place id.
func (p *PlacesClient) LookupByID(placeID string) (*PlaceResult, error) {
	endpoint := fmt.Sprintf("%s/details/json?place_id=%s&fields=place_id,name,formatted_address,rating&key=%s",
		p.BaseURL, url.QueryEscape(placeID), p.APIKey)

	var body placeDetailsResponse
	if err := p.getJSON(endpoint, &body); err != nil {
		return nil, err
	}
	if body.Status != "OK" {
		return nil, &utils.UpstreamError{Provider: "places", Message: body.Status}
	}
	return &PlaceResult{
		PlaceID:          body.Result.PlaceID,
		Name:             body.Result.Name,
		FormattedAddress: body.Result.FormattedAddress,
		Rating:           body.Result.Rating,
		ReviewLink:       reviewLinkFor(body.Result.PlaceID),
	}, nil
}

// Search runs a free-text search and returns the best match.
func (p *PlacesClient) Search(query string) (*PlaceResult, error) {
	endpoint := fmt.Sprintf("%s/textsearch/json?query=%s&key=%s",
		p.BaseURL, url.QueryEscape(query), p.APIKey)

	var body placeSearchResponse
	if err := p.getJSON(endpoint, &body); err != nil {
		return nil, err
	}
	if body.Status != "OK" || len(body.Results) == 0 {
		return nil, &utils.NotFoundError{Resource: "Place"}
	}
	top := body.Results[0]
	return &PlaceResult{
		PlaceID:          top.PlaceID,
		Name:             top.Name,
		FormattedAddress: top.FormattedAddress,
		Rating:           top.Rating,
		ReviewLink:       reviewLinkFor(top.PlaceID),
	}, nil
}

func (p *PlacesClient) getJSON(endpoint string, out interface{}) error {
	resp, err := p.HTTP.Get(endpoint)
	if err != nil {
		return &utils.UpstreamError{Provider: "places", Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &utils.UpstreamError{Provider: "places", Message: resp.Status}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &utils.UpstreamError{Provider: "places", Message: err.Error()}
	}
	return nil
}

func reviewLinkFor(placeID string) string {
	return "https://search.google.com/local/writereview?placeid=" + placeID
}
