package myload_test

import (
	"errors"
	"math"
	"testing"

	"github.com/vvka-141/myload/pkg/myload"
)

func TestConnectionConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		config    myload.ConnectionConfig
		wantError bool
	}{
		{
			name:   "valid config",
			config: myload.ConnectionConfig{Host: "127.0.0.1", Username: "app", Database: "shop"},
		},
		{
			name:   "password is optional",
			config: myload.ConnectionConfig{Host: "db", Port: 3307, Username: "app", Password: "", Database: "shop"},
		},
		{
			name:      "missing host",
			config:    myload.ConnectionConfig{Username: "app", Database: "shop"},
			wantError: true,
		},
		{
			name:      "missing user",
			config:    myload.ConnectionConfig{Host: "db", Database: "shop"},
			wantError: true,
		},
		{
			name:      "missing database",
			config:    myload.ConnectionConfig{Host: "db", Username: "app"},
			wantError: true,
		},
		{
			name:      "port out of range",
			config:    myload.ConnectionConfig{Host: "db", Port: 70000, Username: "app", Database: "shop"},
			wantError: true,
		},
		{
			name:   "cloud sql needs no host",
			config: myload.ConnectionConfig{Username: "sa@proj.iam", Database: "shop", AuthMethod: myload.AuthMethodGoogleIAM, GoogleInstance: "p:r:i"},
		},
		{
			name:      "unknown auth method",
			config:    myload.ConnectionConfig{Host: "db", Username: "app", Database: "shop", AuthMethod: myload.AuthMethod(42)},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantError {
				t.Fatalf("Validate() error = %v, wantError %v", err, tt.wantError)
			}
			if err != nil && !errors.Is(err, myload.ErrInvalidArgument) {
				t.Errorf("Validate() error = %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestConnectionConfig_Address(t *testing.T) {
	c := myload.ConnectionConfig{Host: "db.internal"}
	if got := c.Address(); got != "db.internal:3306" {
		t.Errorf("Address() = %q, want db.internal:3306", got)
	}
	c.Port = 3307
	if got := c.Address(); got != "db.internal:3307" {
		t.Errorf("Address() = %q, want db.internal:3307", got)
	}
}

func TestColumnUpload_Validate(t *testing.T) {
	tests := []struct {
		name      string
		req       myload.ColumnUpload
		wantError bool
	}{
		{"valid", myload.ColumnUpload{Table: "m", Column: "v", Values: []float64{1, 2}}, false},
		{"empty values allowed", myload.ColumnUpload{Table: "m", Column: "v"}, false},
		{"missing table", myload.ColumnUpload{Column: "v"}, true},
		{"missing column", myload.ColumnUpload{Table: "m"}, true},
		{"nan", myload.ColumnUpload{Table: "m", Column: "v", Values: []float64{1, math.NaN()}}, true},
		{"inf", myload.ColumnUpload{Table: "m", Column: "v", Values: []float64{math.Inf(-1)}}, true},
		{"backtick and quote allowed", myload.ColumnUpload{Table: "a`b", Column: "c'd"}, false},
		{"placeholder in table", myload.ColumnUpload{Table: "m?", Column: "v"}, true},
		{"placeholder in column", myload.ColumnUpload{Table: "m", Column: "v?"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantError {
				t.Fatalf("Validate() error = %v, wantError %v", err, tt.wantError)
			}
			if err != nil && !errors.Is(err, myload.ErrInvalidArgument) {
				t.Errorf("Validate() error = %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestCSVUpload_Validate(t *testing.T) {
	if err := (&myload.CSVUpload{Table: "products"}).Validate(); err != nil {
		t.Errorf("nil data must be accepted, got %v", err)
	}
	if err := (&myload.CSVUpload{Data: []byte("a\n")}).Validate(); !errors.Is(err, myload.ErrInvalidArgument) {
		t.Errorf("missing table: got %v, want ErrInvalidArgument", err)
	}
	if err := (&myload.CSVUpload{Table: "why?"}).Validate(); !errors.Is(err, myload.ErrInvalidArgument) {
		t.Errorf("placeholder in table: got %v, want ErrInvalidArgument", err)
	}
}

func TestParseAuthMethod(t *testing.T) {
	tests := []struct {
		in      string
		want    myload.AuthMethod
		wantErr bool
	}{
		{"", myload.AuthMethodStandard, false},
		{"standard", myload.AuthMethodStandard, false},
		{"AWS-IAM", myload.AuthMethodAWSIAM, false},
		{"google-iam", myload.AuthMethodGoogleIAM, false},
		{"azure-entra-id", myload.AuthMethodAzureEntraID, false},
		{"kerberos", myload.AuthMethodStandard, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := myload.ParseAuthMethod(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseAuthMethod(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseAuthMethod(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
