// Package encryption provides streaming authenticated encryption using
// ChaCha20-Poly1305, XChaCha20-Poly1305 or AES-256-GCM.
// Keys are derived from a password with Argon2id, and data is processed in
// framed chunks so files of any size stream with constant memory.
// The passthrough variant passes bytes through untouched so callers never
// branch on "no encryption".
package encryption
