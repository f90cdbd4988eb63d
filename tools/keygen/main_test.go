package main

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteKeypair_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	privatePath := filepath.Join(dir, "jwt-private.pem")
	publicPath := filepath.Join(dir, "jwt-public.pem")

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}

	if err := writeKeypair(privatePath, publicPath, key); err != nil {
		t.Fatalf("writeKeypair returned error: %v", err)
	}

	// read & parse private key
	privatePEM, err := os.ReadFile(privatePath)
	if err != nil {
		t.Fatalf("failed to read private key file: %v", err)
	}
	block, _ := pem.Decode(privatePEM)
	if block == nil || block.Type != "RSA PRIVATE KEY" {
		t.Fatalf("expected RSA PRIVATE KEY PEM block; got %v", block)
	}
	parsedPrivate, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err != nil {
		t.Fatalf("failed to parse private key: %v", err)
	}
	if parsedPrivate.N.Cmp(key.N) != 0 || parsedPrivate.E != key.E {
		t.Error("parsed private key does not match original")
	}

	// read & parse public key
	publicPEM, err := os.ReadFile(publicPath)
	if err != nil {
		t.Fatalf("failed to read public key file: %v", err)
	}
	block, _ = pem.Decode(publicPEM)
	if block == nil || block.Type != "PUBLIC KEY" {
		t.Fatalf("expected PUBLIC KEY PEM block; got %v", block)
	}
	parsedPublic, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		t.Fatalf("failed to parse public key: %v", err)
	}
	rsaPublic, ok := parsedPublic.(*rsa.PublicKey)
	if !ok {
		t.Fatalf("public key is %T; want *rsa.PublicKey", parsedPublic)
	}
	if rsaPublic.N.Cmp(key.N) != 0 || rsaPublic.E != key.E {
		t.Error("parsed public key does not match original")
	}
}
