// Package main generates the RSA keypair used to sign and verify JWT
// tokens, writing PEM files under the "certs" directory.
package main

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"
)

func main() {
	// certs directory for storing the generated keypair
	dir := "certs"
	_ = os.MkdirAll(dir, 0755)

	key, err := rsa.GenerateKey(rand.Reader, 4096)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to generate key: %v\n", err)
		os.Exit(1)
	}

	if err := writeKeypair(dir+"/jwt-private.pem", dir+"/jwt-public.pem", key); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write keypair: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("✅ JWT keypair generated into ./certs")
}

// writeKeypair writes the private key and its public half to the given
// paths. The private key is PEM-encoded as "RSA PRIVATE KEY" (PKCS#1)
// and the public key as "PUBLIC KEY" (PKIX).
func writeKeypair(privatePath, publicPath string, key *rsa.PrivateKey) error {
	privateOut, err := os.Create(privatePath)
	if err != nil {
		return err
	}
	if err := pem.Encode(privateOut, &pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)}); err != nil {
		_ = privateOut.Close()
		return err
	}
	if err := privateOut.Close(); err != nil {
		return err
	}

	publicBytes, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		return err
	}
	publicOut, err := os.Create(publicPath)
	if err != nil {
		return err
	}
	if err := pem.Encode(publicOut, &pem.Block{Type: "PUBLIC KEY", Bytes: publicBytes}); err != nil {
		_ = publicOut.Close()
		return err
	}
	return publicOut.Close()
}
