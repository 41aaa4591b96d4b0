package main

// Encrypts and decrypts the credential files for this project, so that
// an encrypted .env can travel with backups of the repository.

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha1"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/alexflint/go-arg"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/term"
)

var salt = []byte{
	142, 13, 77, 201, 88, 54, 169, 22,
	240, 101, 37, 190, 66, 150, 11, 203,
}

const encryptedSuffix = ".enc"

func Main() error {
	var args struct {
		Encrypt []string `help:"paths to encrypt"`
		Decrypt []string `help:"paths to decrypt"`
	}
	p := arg.MustParse(&args)

	if len(args.Encrypt) == 0 && len(args.Decrypt) == 0 {
		p.Fail("you must provide one of --encrypt or --decrypt")
	}

	// prompt for password
	fmt.Print("Enter password: ")
	password, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return fmt.Errorf("error reading password: %w", err)
	}
	fmt.Println()

	key := pbkdf2.Key(password, salt, 8192, 32, sha1.New)

	for _, path := range args.Encrypt {
		if err := transform(path, key, encrypt); err != nil {
			return err
		}
	}
	for _, path := range args.Decrypt {
		if err := transform(path, key, decrypt); err != nil {
			return err
		}
	}

	return nil
}

// transform reads path, applies f, and writes the result next to the
// input with the encrypted suffix added or removed
func transform(path string, key []byte, f func([]byte, []byte) ([]byte, error)) error {
	in, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	out, err := f(in, key)
	if err != nil {
		return fmt.Errorf("error processing %s: %w", path, err)
	}

	var outpath string
	if strings.HasSuffix(path, encryptedSuffix) {
		outpath = strings.TrimSuffix(path, encryptedSuffix)
	} else {
		outpath = path + encryptedSuffix
	}

	// the decrypted output holds live credentials
	return os.WriteFile(outpath, out, 0600)
}

// encrypt seals plaintext with AES-GCM under key, prepending the nonce
// to the returned ciphertext
func encrypt(plaintext, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

// decrypt reverses encrypt, failing if the ciphertext was tampered with
func decrypt(ciphertext, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	if len(ciphertext) < gcm.NonceSize() {
		return nil, errors.New("ciphertext shorter than a nonce")
	}

	nonce, sealed := ciphertext[:gcm.NonceSize()], ciphertext[gcm.NonceSize():]
	return gcm.Open(nil, nonce, sealed, nil)
}

func main() {
	if err := Main(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
