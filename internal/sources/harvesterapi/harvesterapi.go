// internal/sources/harvesterapi/harvesterapi.go
package harvesterapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/url"
	"strings"
	"time"

	"harvestx/internal/core/domain"
	"harvestx/internal/platform/errors"
	"harvestx/internal/platform/httpclient"
	"harvestx/internal/platform/logx"
	"harvestx/internal/platform/validator"
)

// Config configura el cliente del servicio theHarvester.
type Config struct {
	// BaseURL http://host:port del servicio
	BaseURL string

	// Sources fuentes de theHarvester a consultar
	Sources []string

	// Timeout por petición (0 = default del httpclient)
	Timeout time.Duration

	// RateLimit peticiones por segundo (0 = sin límite)
	RateLimit float64
}

// Client consulta GET {BaseURL}/query?source=<csv>&domain=<domain>.
// Hace un único intento por consulta.
type Client struct {
	http     *httpclient.Client
	endpoint string
	sources  string
	logger   logx.Logger
}

// New crea un cliente del servicio.
func New(cfg Config, logger logx.Logger) *Client {
	httpCfg := httpclient.DefaultConfig()
	if cfg.Timeout > 0 {
		httpCfg.Timeout = cfg.Timeout
	}
	httpCfg.RateLimit = cfg.RateLimit

	return &Client{
		http:     httpclient.New(httpCfg, logger),
		endpoint: strings.TrimSuffix(cfg.BaseURL, "/") + "/query",
		sources:  strings.Join(cfg.Sources, ","),
		logger:   logger.With("source", "theharvester-api"),
	}
}

// Endpoint retorna la URL consultada.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Query implementa ports.HarvestClient.
// El parámetro domain se envía en punycode (IDNA); para dominios ASCII es el valor recibido tal cual.
func (c *Client) Query(ctx context.Context, domainName string) (domain.RawHarvestResult, error) {
	queried := domainName
	if ascii, err := validator.ToASCII(domainName); err == nil && ascii != "" {
		queried = ascii
	}

	params := url.Values{}
	params.Set("source", c.sources)
	params.Set("domain", queried)

	c.logger.Debug("querying theHarvester", "domain", queried, "sources", c.sources)

	body, err := c.http.FetchJSON(ctx, c.endpoint, params)
	if err != nil {
		return nil, &domain.HarvestServiceError{
			Domain:     domainName,
			URL:        c.endpoint,
			StatusCode: errors.StatusCode(err),
			Err:        err,
		}
	}

	raw, err := c.decode(body)
	if err != nil {
		return nil, &domain.HarvestServiceError{
			Domain: domainName,
			URL:    c.endpoint,
			Err:    err,
		}
	}

	c.logger.Debug("theHarvester response parsed", "domain", queried, "categories", len(raw))
	return raw, nil
}

// decode parsea el objeto JSON de la respuesta. Las categorías conocidas deben
// ser listas de strings; las desconocidas se conservan sólo si lo son.
func (c *Client) decode(body []byte) (domain.RawHarvestResult, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, errors.Wrap(errors.ErrInvalidResponse, "response is not a JSON object")
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidResponse, "malformed JSON: %v", err)
	}

	raw := make(domain.RawHarvestResult, len(fields))
	for name, msg := range fields {
		category := domain.Category(name)

		var values []string
		if err := json.Unmarshal(msg, &values); err != nil {
			if category.Known() {
				return nil, errors.Wrapf(errors.ErrInvalidResponse, "category %q: %v", name, err)
			}
			c.logger.Debug("skipping non-list category", "category", name)
			continue
		}
		raw[category] = values
	}
	return raw, nil
}
