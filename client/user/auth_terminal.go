package user

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/celestix/gotgproto"
	"github.com/watchword/watchword/common/i18n"
	"github.com/watchword/watchword/common/i18n/i18nk"
	"golang.org/x/term"
)

// loginPrompt answers the one-time phone login of the monitored account.
// The phone number from the config is offered first so a restart after a
// lost session only asks for the code.
type loginPrompt struct {
	phone string
	in    *bufio.Reader
	out   io.Writer
	// fd is the terminal used for the hidden 2FA prompt, -1 when in is not one.
	fd int
}

func newTerminalPrompt(phone string) *loginPrompt {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		fd = -1
	}
	return &loginPrompt{phone: phone, in: bufio.NewReader(os.Stdin), out: os.Stdout, fd: fd}
}

func (p *loginPrompt) ask(key i18nk.Key) (string, error) {
	fmt.Fprintf(p.out, "%s\n> ", i18n.T(key))
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("read %s: %w", key, err)
	}
	return strings.TrimSpace(line), nil
}

func (p *loginPrompt) AskPhoneNumber() (string, error) {
	if p.phone != "" {
		phone := p.phone
		// only offered once, a retrial means it was rejected
		p.phone = ""
		return phone, nil
	}
	return p.ask(i18nk.AuthAskPhone)
}

func (p *loginPrompt) AskCode() (string, error) {
	return p.ask(i18nk.AuthAskCode)
}

func (p *loginPrompt) AskPassword() (string, error) {
	if p.fd < 0 {
		return p.ask(i18nk.AuthAskPassword)
	}
	fmt.Fprintf(p.out, "%s\n> ", i18n.T(i18nk.AuthAskPassword))
	pwd, err := term.ReadPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimSpace(string(pwd)), nil
}

func (p *loginPrompt) AuthStatus(status gotgproto.AuthStatus) {
	var key i18nk.Key
	switch status.Event {
	case gotgproto.AuthStatusPhoneRetrial:
		key = i18nk.AuthPhoneRetry
	case gotgproto.AuthStatusPhoneCodeRetrial:
		key = i18nk.AuthCodeRetry
	case gotgproto.AuthStatusPasswordRetrial:
		key = i18nk.AuthPasswordRetry
	default:
		return
	}
	fmt.Fprintln(p.out, i18n.T(key, map[string]any{"Attempts": status.AttemptsLeft}))
}
