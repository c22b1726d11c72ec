// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

// Package client reads from and writes to a node over its HTTP API.
package client

import (
	"encoding/hex"
	"encoding/json"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"

	"github.com/namechain/namechain-core/action"
)

// Endpoint is the target of the endpoint flag
var Endpoint string

// ErrReceiptNotFound is returned until the action lands in a block
var ErrReceiptNotFound = errors.New("no receipt for the action")

const _defaultEndpoint = "http://127.0.0.1:14014"

// DefaultEndpoint returns the endpoint set in the environment, falling back
// to the local node
func DefaultEndpoint() string {
	if endpoint := os.Getenv("NAMECHAIN_ENDPOINT"); endpoint != "" {
		return endpoint
	}
	return _defaultEndpoint
}

// Client is a thin wrapper over the node's HTTP API
type Client struct {
	rest *resty.Client
}

// Dial creates a client against the endpoint flag
func Dial() *Client {
	return New(Endpoint)
}

// New creates a client against the given endpoint
func New(endpoint string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint()
	}
	return &Client{
		rest: resty.New().SetBaseURL(endpoint).SetTimeout(10 * time.Second),
	}
}

// ChainMeta fetches the chain tip metadata
func (c *Client) ChainMeta() (*ChainMeta, error) {
	meta := &ChainMeta{}
	if err := c.get("/v1/chain", meta); err != nil {
		return nil, err
	}
	return meta, nil
}

// Account fetches the state of one account
func (c *Client) Account(addr string) (*AccountMeta, error) {
	meta := &AccountMeta{}
	if err := c.get("/v1/accounts/"+addr, meta); err != nil {
		return nil, err
	}
	return meta, nil
}

// RegistryMeta fetches the registrar's constants and counters
func (c *Client) RegistryMeta() (*RegistryMeta, error) {
	meta := &RegistryMeta{}
	if err := c.get("/v1/registry", meta); err != nil {
		return nil, err
	}
	return meta, nil
}

// RegistryEntries fetches one page of the registry in registration order
func (c *Client) RegistryEntries(offset, limit uint64) (*RegistryEntries, error) {
	page := &RegistryEntries{}
	err := c.get("/v1/registry/names", page,
		"offset", strconv.FormatUint(offset, 10),
		"limit", strconv.FormatUint(limit, 10))
	if err != nil {
		return nil, err
	}
	return page, nil
}

// RegistryEntry fetches the registered name at the given index
func (c *Client) RegistryEntry(index uint64) (*RegistryEntry, error) {
	entry := &RegistryEntry{}
	if err := c.get("/v1/registry/names/"+strconv.FormatUint(index, 10), entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// IsDuplicate reports whether the name is already registered
func (c *Client) IsDuplicate(name string) (bool, error) {
	resp := &duplicateResponse{}
	if err := c.get("/v1/registry/duplicate", resp, "name", name); err != nil {
		return false, err
	}
	return resp.Duplicate, nil
}

// SendAction submits a sealed action and returns its hash
func (c *Client) SendAction(selp *action.SealedEnvelope) (string, error) {
	raw, err := selp.Serialize()
	if err != nil {
		return "", errors.Wrap(err, "failed to serialize the action")
	}
	resp, err := c.rest.R().
		SetHeader("Content-Type", "application/json").
		SetBody(&SendActionRequest{Action: hex.EncodeToString(raw)}).
		Post("/v1/actions")
	if err != nil {
		return "", errors.Wrapf(err, "failed to reach %s", c.rest.BaseURL)
	}
	if !resp.IsSuccess() {
		return "", errors.Errorf("%s: %s", resp.Status(), apiError(resp.Body()))
	}
	return gjson.GetBytes(resp.Body(), "actionHash").String(), nil
}

// Receipt fetches the receipt of an action, ErrReceiptNotFound until the
// action lands in a block
func (c *Client) Receipt(actHash string) (*Receipt, error) {
	resp, err := c.rest.R().Get("/v1/actions/" + actHash + "/receipt")
	if err != nil {
		return nil, errors.Wrapf(err, "failed to reach %s", c.rest.BaseURL)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, ErrReceiptNotFound
	}
	if !resp.IsSuccess() {
		return nil, errors.Errorf("%s: %s", resp.Status(), apiError(resp.Body()))
	}
	receipt := &Receipt{}
	if err := json.Unmarshal(resp.Body(), receipt); err != nil {
		return nil, errors.Wrap(err, "failed to parse the receipt")
	}
	return receipt, nil
}

func (c *Client) get(path string, out interface{}, queries ...string) error {
	req := c.rest.R()
	for i := 0; i+1 < len(queries); i += 2 {
		req.SetQueryParam(queries[i], queries[i+1])
	}
	resp, err := req.Get(path)
	if err != nil {
		return errors.Wrapf(err, "failed to reach %s", c.rest.BaseURL)
	}
	if !resp.IsSuccess() {
		return errors.Errorf("%s: %s", resp.Status(), apiError(resp.Body()))
	}
	return errors.Wrap(json.Unmarshal(resp.Body(), out), "failed to parse the response")
}

// apiError pulls the error text out of a failed response body
func apiError(body []byte) string {
	if msg := gjson.GetBytes(body, "error"); msg.Exists() {
		return msg.String()
	}
	return string(body)
}
