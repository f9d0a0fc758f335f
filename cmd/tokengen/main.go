// Command tokengen prints candidate BEARER_TOKEN values for the MCP server.
package main

import (
    "crypto/rand"
    "encoding/base64"
    "encoding/hex"
    "fmt"
    "log"
)

// 64 characters, so indexing by a random byte modulo the length is unbiased.
const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

func main() {
    fmt.Println("Bearer token candidates; pick one and set it as BEARER_TOKEN in .env")
    fmt.Println()
    fmt.Printf("alphanumeric (64 chars):    BEARER_TOKEN=%s\n", alnumToken(64))
    fmt.Printf("hex (64 chars):             BEARER_TOKEN=%s\n", hex.EncodeToString(randBytes(32)))
    fmt.Printf("url-safe base64 (43 chars): BEARER_TOKEN=%s\n", base64.RawURLEncoding.EncodeToString(randBytes(32)))
    fmt.Println()
    fmt.Println("Clients must send the header: Authorization: Bearer <token>")
}

func alnumToken(length int) string {
    out := make([]byte, length)
    for i, b := range randBytes(length) {
        out[i] = alphabet[int(b)%len(alphabet)]
    }
    return string(out)
}

func randBytes(n int) []byte {
    b := make([]byte, n)
    if _, err := rand.Read(b); err != nil {
        log.Fatalf("reading random bytes: %v", err)
    }
    return b
}
