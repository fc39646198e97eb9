package email

import (
	"errors"
	"net"
	"net/smtp"
	"net/textproto"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Outcome classifies an SMTP verification attempt.
type Outcome string

const (
	OutcomeValid   Outcome = "Valid"
	OutcomeInvalid Outcome = "Invalid"
	OutcomeSkip    Outcome = "Skip"
	OutcomeUnknown Outcome = "Unknown"
)

// Verifier probes mail servers to confirm an address accepts mail.
// Probing is capped per run: SMTP checks are slow, frequently blocked
// from cloud egress ranges, and must never become the pipeline's
// bottleneck. Catch-all domains are cached and skipped.
type Verifier struct {
	mu       sync.Mutex
	verified int
	limit    int
	catchAll map[string]struct{}

	helloDomain string
	fromAddress string
	timeout     time.Duration

	// Injectable for tests.
	lookupMX func(domain string) (string, error)
	probe    func(mxHost, hello, from, rcpt string, timeout time.Duration) (int, error)
}

// NewVerifier creates a Verifier that performs at most limit successful
// verifications per run.
func NewVerifier(limit int, helloDomain, fromAddress string, timeout time.Duration) *Verifier {
	return &Verifier{
		limit:       limit,
		catchAll:    make(map[string]struct{}),
		helloDomain: helloDomain,
		fromAddress: fromAddress,
		timeout:     timeout,
		lookupMX:    lookupBestMX,
		probe:       smtpProbe,
	}
}

// Remaining reports how many verification slots are left this run.
func (v *Verifier) Remaining() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.limit - v.verified
}

// Verify checks whether email's mail server accepts the address.
// Returns Skip when the cap is reached, MX resolution fails, or the
// domain is catch-all; Valid/Invalid on a definitive server answer;
// Unknown otherwise.
func (v *Verifier) Verify(email string) Outcome {
	parts := strings.SplitN(email, "@", 2)
	if len(parts) != 2 || parts[1] == "" {
		return OutcomeSkip
	}
	domain := parts[1]

	v.mu.Lock()
	if v.verified >= v.limit {
		v.mu.Unlock()
		return OutcomeSkip
	}
	if _, ok := v.catchAll[domain]; ok {
		v.mu.Unlock()
		zap.L().Debug("email: skipping smtp for catch-all domain", zap.String("domain", domain))
		return OutcomeSkip
	}
	v.mu.Unlock()

	mxHost, err := v.lookupMX(domain)
	if err != nil {
		zap.L().Debug("email: no mx record", zap.String("domain", domain), zap.Error(err))
		return OutcomeSkip
	}

	// Catch-all probe: a server accepting a synthetic address accepts
	// everything, so a 250 for the real address proves nothing.
	if code, err := v.probe(mxHost, v.helloDomain, v.fromAddress, "xyz123randomtest@"+domain, v.timeout); err == nil && code == 250 {
		v.mu.Lock()
		v.catchAll[domain] = struct{}{}
		v.mu.Unlock()
		zap.L().Info("email: domain is catch-all", zap.String("domain", domain))
		return OutcomeSkip
	}

	code, err := v.probe(mxHost, v.helloDomain, v.fromAddress, email, v.timeout)
	if err != nil {
		zap.L().Debug("email: smtp probe failed", zap.String("email", email), zap.Error(err))
		return OutcomeSkip
	}

	switch code {
	case 250:
		v.mu.Lock()
		// Re-check under the lock: a concurrent probe may have taken
		// the last slot while ours was in flight.
		if v.verified >= v.limit {
			v.mu.Unlock()
			return OutcomeSkip
		}
		v.verified++
		v.mu.Unlock()
		zap.L().Info("email: smtp verified", zap.String("email", email))
		return OutcomeValid
	case 550:
		return OutcomeInvalid
	default:
		return OutcomeUnknown
	}
}

// lookupBestMX resolves the highest-priority mail exchanger for a domain.
func lookupBestMX(domain string) (string, error) {
	records, err := net.LookupMX(domain)
	if err != nil {
		return "", err
	}
	if len(records) == 0 {
		return "", errors.New("email: no mx records")
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Pref < records[j].Pref
	})
	return strings.TrimSuffix(records[0].Host, "."), nil
}

// smtpProbe performs a connect/HELO/MAIL-FROM/RCPT-TO handshake and
// returns the RCPT reply code.
func smtpProbe(mxHost, hello, from, rcpt string, timeout time.Duration) (int, error) {
	conn, err := net.DialTimeout("tcp", net.JoinHostPort(mxHost, "25"), timeout)
	if err != nil {
		return 0, err
	}
	_ = conn.SetDeadline(time.Now().Add(timeout))

	client, err := smtp.NewClient(conn, mxHost)
	if err != nil {
		_ = conn.Close()
		return 0, err
	}
	defer func() { _ = client.Close() }()

	if err := client.Hello(hello); err != nil {
		return 0, err
	}
	if err := client.Mail(from); err != nil {
		return 0, err
	}

	err = client.Rcpt(rcpt)
	if err == nil {
		_ = client.Quit()
		return 250, nil
	}

	var protoErr *textproto.Error
	if errors.As(err, &protoErr) {
		return protoErr.Code, nil
	}
	return 0, err
}
