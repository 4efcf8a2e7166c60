package client

import (
	"fmt"
	"net/url"

	"dopo/pkg/model"
)

type ActivityClient struct {
	httpClient *HttpClient
}

func NewActivityClient(baseUrl string) *ActivityClient {
	return &ActivityClient{
		httpClient: NewHttpClient(baseUrl),
	}
}

func (c *ActivityClient) List() (*Response, error) {
	return c.httpClient.GET("/activities")
}

func (c *ActivityClient) Search(keyword string) (*Response, error) {
	q := url.Values{}
	q.Set("q", keyword)
	return c.httpClient.GET("/activities/search?" + q.Encode())
}

func (c *ActivityClient) UpdateSpaces(updates []model.SpacesUpdate) (*Response, error) {
	return c.httpClient.PUT("/activities", updates)
}

func (c *ActivityClient) UpdateSpacesRaw(rawBody []byte) (*Response, error) {
	return c.httpClient.PUTRaw("/activities", rawBody)
}

func (c *ActivityClient) DecodeActivities(resp *Response) ([]model.Activity, error) {
	var activities []model.Activity
	if err := resp.DecodeJSON(&activities); err != nil {
		return nil, fmt.Errorf("could not decode activity list:\n%s\n%w", resp, err)
	}
	return activities, nil
}

func (c *ActivityClient) DecodeResults(resp *Response) (*model.SpacesUpdateSummary, error) {
	var summary model.SpacesUpdateSummary
	if err := resp.DecodeJSON(&summary); err != nil {
		return nil, fmt.Errorf("could not decode spaces update summary:\n%s\n%w", resp, err)
	}
	return &summary, nil
}
