package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"newscorpus/types"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"golang.org/x/term"
)

// CredentialSource names one of the supported ways to acquire AWS credentials
type CredentialSource string

const (
	// CredentialsDefault defers to the SDK default chain
	CredentialsDefault CredentialSource = "default"
	// CredentialsProfile uses a named shared config/credentials profile
	CredentialsProfile CredentialSource = "profile"
	// CredentialsEnv requires AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY
	CredentialsEnv CredentialSource = "env"
	// CredentialsPrompt asks for keys on the terminal
	CredentialsPrompt CredentialSource = "prompt"
)

// Prompter reads credentials interactively.
// Secret reads a value without echo; when nil the terminal on In is used.
type Prompter struct {
	In     io.Reader
	Out    io.Writer
	Secret func() (string, error)
}

// TerminalPrompter prompts on stdin/stderr
func TerminalPrompter() *Prompter {
	return &Prompter{In: os.Stdin, Out: os.Stderr}
}

// CredentialsProvider returns an explicit provider for the configured source.
// A nil provider means the SDK chain (optionally with Profile) should be used.
func (c *Config) CredentialsProvider(p *Prompter) (aws.CredentialsProvider, error) {
	switch c.Credentials {
	case CredentialsDefault, CredentialsProfile, "":
		return nil, nil
	case CredentialsEnv:
		return envCredentials()
	case CredentialsPrompt:
		if p == nil {
			p = TerminalPrompter()
		}
		return p.credentials()
	default:
		return nil, fmt.Errorf("unknown credentials source %q", c.Credentials)
	}
}

func envCredentials() (aws.CredentialsProvider, error) {
	id := strings.TrimSpace(os.Getenv("AWS_ACCESS_KEY_ID"))
	secret := strings.TrimSpace(os.Getenv("AWS_SECRET_ACCESS_KEY"))
	if id == "" || secret == "" {
		return nil, &types.CredentialError{
			Source: string(CredentialsEnv),
			Err:    errors.New("AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY must both be set"),
		}
	}
	token := strings.TrimSpace(os.Getenv("AWS_SESSION_TOKEN"))
	return credentials.NewStaticCredentialsProvider(id, secret, token), nil
}

func (p *Prompter) credentials() (aws.CredentialsProvider, error) {
	reader := bufio.NewReader(p.In)

	fmt.Fprint(p.Out, "AWS Access Key ID: ")
	id, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, &types.CredentialError{Source: string(CredentialsPrompt), Err: err}
	}

	fmt.Fprint(p.Out, "AWS Secret Access Key: ")
	var secret string
	if p.Secret != nil {
		secret, err = p.Secret()
	} else {
		secret, err = p.readTerminalSecret(reader)
	}
	fmt.Fprintln(p.Out)
	if err != nil {
		return nil, &types.CredentialError{Source: string(CredentialsPrompt), Err: err}
	}

	id = strings.TrimSpace(id)
	secret = strings.TrimSpace(secret)
	if id == "" || secret == "" {
		return nil, &types.CredentialError{
			Source: string(CredentialsPrompt),
			Err:    errors.New("access key id and secret access key are required"),
		}
	}
	return credentials.NewStaticCredentialsProvider(id, secret, ""), nil
}

// readTerminalSecret disables echo when In is a terminal and falls back to a
// plain line read otherwise (pipes, tests).
func (p *Prompter) readTerminalSecret(reader *bufio.Reader) (string, error) {
	if f, ok := p.In.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return line, nil
}
