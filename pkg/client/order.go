package client

import (
	"fmt"

	"dopo/pkg/model"
)

const IdempotencyKeyHeader = "Idempotency-Key"

type OrderClient struct {
	httpClient *HttpClient
}

func NewOrderClient(baseUrl string) *OrderClient {
	return &OrderClient{
		httpClient: NewHttpClient(baseUrl),
	}
}

func (c *OrderClient) List() (*Response, error) {
	return c.httpClient.GET("/orders")
}

func (c *OrderClient) Create(order model.Order) (*Response, error) {
	return c.httpClient.POST("/orders", order)
}

func (c *OrderClient) CreateWithIdempotencyKey(order model.Order, key string) (*Response, error) {
	return c.httpClient.POSTWithHeaders("/orders", order, map[string]string{IdempotencyKeyHeader: key})
}

func (c *OrderClient) CreateRaw(rawBody []byte) (*Response, error) {
	return c.httpClient.POSTRaw("/orders", rawBody)
}

func (c *OrderClient) DecodeOrders(resp *Response) ([]model.Order, error) {
	var orders []model.Order
	if err := resp.DecodeJSON(&orders); err != nil {
		return nil, fmt.Errorf("could not decode order list:\n%s\n%w", resp, err)
	}
	return orders, nil
}
