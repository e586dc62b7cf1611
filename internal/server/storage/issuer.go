package storage

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/pdfdrop/internal/common"
	"github.com/dmitrijs2005/pdfdrop/internal/logging"
	"github.com/dmitrijs2005/pdfdrop/internal/server/auth"
)

// Outcome labels passed to an IssueObserver.
const (
	OutcomeIssued   = "issued"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// Authorization is everything a client needs for one direct upload.
type Authorization struct {
	URL     string            `json:"uploadUrl"`
	Key     string            `json:"key"`
	Headers map[string]string `json:"headers"`
}

// IssueObserver is notified once per Issue call.
type IssueObserver interface {
	ObserveIssue(outcome string, elapsed time.Duration)
}

type IssuerOptions struct {
	Bucket    string
	KeyPrefix string
	Expiry    time.Duration
	Logger    logging.Logger
	Observer  IssueObserver
}

// Issuer validates filenames and turns them into presigned, conditional PUT
// authorizations.
type Issuer struct {
	presigner Presigner
	bucket    string
	prefix    string
	expiry    time.Duration
	logger    logging.Logger
	observer  IssueObserver
}

func NewIssuer(p Presigner, opts IssuerOptions) *Issuer {
	i := &Issuer{
		presigner: p,
		bucket:    opts.Bucket,
		prefix:    opts.KeyPrefix,
		expiry:    opts.Expiry,
		logger:    opts.Logger,
		observer:  opts.Observer,
	}
	if i.logger == nil {
		i.logger = logging.Nop{}
	}
	if i.expiry <= 0 {
		i.expiry = 300 * time.Second
	}
	return i
}

// ValidateFilename enforces presence, length (in characters) and the .pdf
// extension.
func ValidateFilename(filename string) error {
	if filename == "" {
		return &ValidationError{Reason: ReasonFilenameRequired}
	}
	if utf8.RuneCountInString(filename) > common.MaxFilenameLength {
		return &ValidationError{Reason: ReasonFilenameTooLong}
	}
	if !strings.HasSuffix(strings.ToLower(filename), common.PDFExtension) {
		return &ValidationError{Reason: ReasonNotPDF}
	}
	return nil
}

// KeyFor is the object key a filename is stored under.
func (i *Issuer) KeyFor(filename string) string {
	return i.prefix + SanitizeKey(filename)
}

// Issue returns an authorization for a single PUT of filename.
func (i *Issuer) Issue(ctx context.Context, filename string, requester auth.Principal) (*Authorization, error) {
	start := time.Now()

	if err := ValidateFilename(filename); err != nil {
		i.observe(OutcomeRejected, start)
		return nil, err
	}

	key := i.KeyFor(filename)
	req := PutRequest{
		Bucket:      i.bucket,
		Key:         key,
		ContentType: common.PDFContentType,
		IfNoneMatch: IfNoneMatchAny,
		Expires:     i.expiry,
	}

	signed, err := i.presigner.PresignPut(ctx, req)
	if err != nil {
		i.observe(OutcomeFailed, start)
		i.logger.Error(ctx, "presign failed", "key", key, "user", requester.Username, "error", err)
		return nil, &UpstreamError{Err: err}
	}

	i.observe(OutcomeIssued, start)
	i.logger.Info(ctx, "upload url issued", "key", key, "user", requester.Username, "expires_in", i.expiry.String())

	return &Authorization{URL: signed.URL, Key: key, Headers: signed.Headers}, nil
}

func (i *Issuer) observe(outcome string, start time.Time) {
	if i.observer != nil {
		i.observer.ObserveIssue(outcome, time.Since(start))
	}
}
