package geoip

import (
	"errors"
	"testing"
)

func TestNewResolverEmptyPath(t *testing.T) {
	r, err := NewResolver("  ")
	if err != nil || r != nil {
		t.Fatalf("NewResolver(empty) = %v, %v; want nil, nil", r, err)
	}
	if r.Lookup() != nil {
		t.Fatal("nil resolver should yield nil lookup")
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close on nil resolver: %v", err)
	}
}

func TestNewResolverMissingFile(t *testing.T) {
	if _, err := NewResolver("/nonexistent/GeoLite2-Country.mmdb"); err == nil {
		t.Fatal("expected error for missing database")
	}
}

func TestCountryCodeWithoutDatabase(t *testing.T) {
	var r *Resolver
	tests := []struct {
		ip      string
		want    string
		wantErr error
	}{
		{ip: "127.0.0.1", want: ""},
		{ip: "10.1.2.3", want: ""},
		{ip: "::1", want: ""},
		{ip: "203.0.113.4", wantErr: ErrUnavailable},
	}
	for _, tc := range tests {
		got, err := r.CountryCode(tc.ip)
		if tc.wantErr != nil {
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("CountryCode(%s) err = %v, want %v", tc.ip, err, tc.wantErr)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("CountryCode(%s) = %q, %v", tc.ip, got, err)
		}
	}
	if _, err := r.CountryCode("not-an-ip"); err == nil {
		t.Fatal("expected invalid ip error")
	}
}
