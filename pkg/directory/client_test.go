package directory

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestClient_Resources(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/resources" {
			t.Errorf("path = %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string][]Resource{
			"resources": {
				{ID: "res-1", Name: "billing-api", BouncerID: "pep-1"},
				{ID: "res-2", Name: "user-db", BouncerID: "pep-2"},
			},
		})
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL})
	listing := client.Resources(context.Background())

	if listing.Degraded {
		t.Fatalf("listing degraded: %s", listing.Reason)
	}
	if len(listing.Items) != 2 {
		t.Fatalf("got %d resources, want 2", len(listing.Items))
	}
	// The paired enforcement point rides along with each resource, so the
	// builder can auto-populate it on selection.
	if listing.Items[0].BouncerID != "pep-1" {
		t.Errorf("resource missing paired bouncer: %+v", listing.Items[0])
	}
}

func TestClient_Bouncers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bouncers" {
			t.Errorf("path = %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string][]Bouncer{
			"bouncers": {{ID: "pep-1", Name: "edge-gateway", Kind: "gateway"}},
		})
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL})
	listing := client.Bouncers(context.Background())

	if listing.Degraded {
		t.Fatalf("listing degraded: %s", listing.Reason)
	}
	if len(listing.Items) != 1 || listing.Items[0].Kind != "gateway" {
		t.Errorf("bouncers = %+v", listing.Items)
	}
}

func TestClient_DegradesOnServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL})
	listing := client.Resources(context.Background())

	if !listing.Degraded {
		t.Fatal("listing not degraded on 500")
	}
	if len(listing.Items) != 0 {
		t.Errorf("degraded listing carries items: %v", listing.Items)
	}
	if !strings.Contains(listing.Reason, "500") {
		t.Errorf("reason = %q, want the status mentioned", listing.Reason)
	}
}

func TestClient_DegradesOnAuthFailure(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "no", status)
		}))

		client := New(Config{BaseURL: server.URL})
		listing := client.Bouncers(context.Background())
		server.Close()

		if !listing.Degraded {
			t.Fatalf("status %d did not degrade the listing", status)
		}
		if !strings.Contains(listing.Reason, "log in again") {
			t.Errorf("status %d reason = %q, want a re-auth hint", status, listing.Reason)
		}
	}
}

func TestClient_DegradesWhenUnreachable(t *testing.T) {
	client := New(Config{BaseURL: "http://127.0.0.1:1"})
	listing := client.Resources(context.Background())

	if !listing.Degraded {
		t.Fatal("unreachable directory did not degrade the listing")
	}
	if !strings.Contains(listing.Reason, "unreachable") {
		t.Errorf("reason = %q", listing.Reason)
	}
}

func TestClient_SendsBearerToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string][]Resource{"resources": {}})
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL, Token: func() string { return "tok" }})
	client.Resources(context.Background())

	if gotAuth != "Bearer tok" {
		t.Errorf("auth header = %q", gotAuth)
	}
}

func TestClient_ResourceSchema(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/resources/res-1/schema" {
			t.Errorf("path = %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"user.role": "string",
			"user.age":  "number",
		})
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL})
	schema := client.ResourceSchema(context.Background(), "res-1")

	if schema["user.role"] != "string" {
		t.Errorf("schema = %v", schema)
	}
}

func TestClient_ResourceSchemaDegradesToNil(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL})
	if schema := client.ResourceSchema(context.Background(), "res-x"); schema != nil {
		t.Errorf("schema = %v, want nil on failure", schema)
	}
}
