// Package zillow resolves Zillow property IDs (zpid) from house addresses.
//
// It queries a GetSearchResults endpoint answering JSON shaped like:
//
//	{
//	  "message": {"text": "Request successfully processed", "code": 0},
//	  "response": {"results": {"result": [{"zpid": "48749425"}]}}
//	}
//
// A non zero message code is a failed search and the message text tells why.
package zillow

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/happyhood"
	"golang.org/x/time/rate"
)

// DefaultURL is the default address of the search endpoint.
const DefaultURL = "https://www.zillow.com/webservice/GetSearchResults.htm"

const (
	codePath    = "$.message.code"
	messagePath = "$.message.text"
	zpidPath    = "$.response.results.result[0].zpid"
)

// Client searches zpids. It implements happyhood.Resolver.
type Client struct {
	URL     string        // search endpoint
	APIKey  string        // Zillow Web Services ID (zws-id)
	HTTP    *http.Client  // defaults to http.DefaultClient
	Limiter *rate.Limiter // optional, bounds the request rate
}

// NewClient returns a client for the search endpoint at addr, limited to one request per second.
func NewClient(addr, apiKey string) *Client {
	if addr == "" {
		addr = DefaultURL
	}
	return &Client{
		URL:     addr,
		APIKey:  apiKey,
		Limiter: rate.NewLimiter(rate.Limit(1), 1),
	}
}

var _ happyhood.Resolver = (*Client)(nil)

// Resolve searches the zpid of the house at addr.
//
// An error is returned when the endpoint cannot be reached or answers garbage,
// a search that the endpoint rejects is an unsuccessful Resolution.
func (c *Client) Resolve(ctx context.Context, addr happyhood.Address) (happyhood.Resolution, error) {
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return happyhood.Resolution{}, err
		}
	}
	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}

	var jobj any
	if err := jwget(ctx, client, c.searchURL(addr), &jobj); err != nil {
		return happyhood.Resolution{}, fmt.Errorf("error searching %q: %w", addr, err)
	}
	return parse(jobj)
}

func (c *Client) searchURL(addr happyhood.Address) string {
	q := url.Values{}
	q.Set("zws-id", c.APIKey)
	q.Set("address", addr.StreetAddress)
	q.Set("citystatezip", addr.CityStateZip())
	return c.URL + "?" + q.Encode()
}

// parse reads a search answer.
func parse(jobj any) (happyhood.Resolution, error) {
	jcode, err := get(codePath, jobj)
	if err != nil {
		return happyhood.Resolution{}, fmt.Errorf("error parsing %q: %w", codePath, err)
	}
	code, err := number(jcode)
	if err != nil {
		return happyhood.Resolution{}, fmt.Errorf("error parsing %q: %w", codePath, err)
	}
	if code != 0 {
		text, _ := get(messagePath, jobj)
		msg, ok := text.(string)
		if !ok || msg == "" {
			msg = fmt.Sprintf("search failed with code %v", code)
		}
		return happyhood.Resolution{Success: false, Message: msg}, nil
	}

	jzpid, err := get(zpidPath, jobj)
	if err != nil {
		// the house is known but has no zpid.
		return happyhood.Resolution{Success: true}, nil
	}
	switch v := jzpid.(type) {
	case string:
		return happyhood.Resolution{Success: true, ExternalID: v}, nil
	case float64:
		return happyhood.Resolution{Success: true, ExternalID: strconv.FormatFloat(v, 'f', -1, 64)}, nil
	case nil, []any:
		return happyhood.Resolution{Success: true}, nil
	default:
		return happyhood.Resolution{}, fmt.Errorf("error parsing %q: unexpected %T %v", zpidPath, jzpid, jzpid)
	}
}

// get evaluates a json path.
func get(path string, jobj any) (any, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, err
	}
	// because jsonpath is never clear about wheter it returns a list of 1 answer, or a single answer:
	// by this call I keep the first one if any
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	return jval, nil
}

// number reads a json number, that some endpoints return as string.
func number(jval any) (float64, error) {
	switch v := jval.(type) {
	case float64:
		return v, nil
	case string:
		return strconv.ParseFloat(v, 64)
	default:
		return 0, fmt.Errorf("not a number %v", jval)
	}
}
