package docdb

import (
	"context"
	"testing"
)

func TestConnectRejectsEmptyURI(t *testing.T) {
	if _, err := Connect(context.Background(), "", DefaultOptions()); err == nil {
		t.Fatalf("expected error for empty MONGO_URI")
	}
}

func TestConnectRejectsMalformedURI(t *testing.T) {
	if _, err := Connect(context.Background(), "not-a-mongo-uri", DefaultOptions()); err == nil {
		t.Fatalf("expected error for malformed uri")
	}
}
