// internal/testutil/mocks.go
package testutil

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
)

// Nota: los mocks de ports (HarvestClient, EventSink) viven en los tests de cada paquete
// para evitar dependencias circulares con domain.

// HarvesterServer es un servidor theHarvester falso basado en httptest.
type HarvesterServer struct {
	*httptest.Server

	mu      sync.Mutex
	Status  int
	Body    string
	queries []url.Values
	paths   []string
}

// NewHarvesterServer arranca un servidor que responde Status/Body a cualquier petición.
// Se cierra automáticamente al final del test.
func NewHarvesterServer(t *testing.T, status int, body string) *HarvesterServer {
	t.Helper()
	hs := &HarvesterServer{Status: status, Body: body}
	hs.Server = httptest.NewServer(http.HandlerFunc(hs.serve))
	t.Cleanup(hs.Close)
	return hs
}

func (h *HarvesterServer) serve(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	h.queries = append(h.queries, r.URL.Query())
	h.paths = append(h.paths, r.URL.Path)
	status, body := h.Status, h.Body
	h.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

// Calls retorna el número de peticiones recibidas.
func (h *HarvesterServer) Calls() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.queries)
}

// LastQuery retorna los parámetros y el path de la última petición.
func (h *HarvesterServer) LastQuery() (string, url.Values) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.queries) == 0 {
		return "", nil
	}
	return h.paths[len(h.paths)-1], h.queries[len(h.queries)-1]
}

// HostPort separa host y puerto de la URL del servidor.
func (h *HarvesterServer) HostPort() (string, string) {
	u, _ := url.Parse(h.URL)
	return u.Hostname(), u.Port()
}
