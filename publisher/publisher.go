package publisher

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"google.golang.org/api/docs/v1"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"auto_research_doc_publisher/generator"
	"auto_research_doc_publisher/googleauth"
)

const (
	docMimeType    = "application/vnd.google-apps.document"
	folderMimeType = "application/vnd.google-apps.folder"
)

var (
	// ErrUnsupportedDestination means the folder is structurally unusable:
	// it does not live under a shared drive, so the service identity has no
	// quota to create anything there. Not transient.
	ErrUnsupportedDestination = errors.New("unsupported destination")
	// ErrPublishFailed covers quota, permission, and not-found failures
	// against the document store.
	ErrPublishFailed = errors.New("publish failed")
)

// Target identifies the destination folder inside a shared drive.
type Target struct {
	DriveID  string
	FolderID string
}

// Ref points at a published document.
type Ref struct {
	DocumentID string
	URL        string
}

// driveAPI and docsAPI wrap the two Google services so tests can fake them.
type driveAPI interface {
	GetFolder(ctx context.Context, id string) (*drive.File, error)
	CreateDoc(ctx context.Context, title, folderID string) (*drive.File, error)
}

type docsAPI interface {
	BatchUpdate(ctx context.Context, docID string, reqs []*docs.Request) error
}

// Publisher creates one new document per run inside a shared drive folder.
// Duplicate runs produce duplicate artifacts; nothing is ever overwritten.
type Publisher struct {
	drive  driveAPI
	docs   docsAPI
	target Target
	logger zerolog.Logger
}

// New builds a Publisher on live Drive and Docs services authorized by cred.
func New(ctx context.Context, cred *googleauth.Credential, target Target, logger zerolog.Logger) (*Publisher, error) {
	if cred == nil {
		return nil, errors.New("credential is required")
	}
	if target.FolderID == "" {
		return nil, errors.New("target folder id is required")
	}

	opts := []option.ClientOption{
		option.WithCredentialsJSON(cred.JSON()),
		option.WithScopes(googleauth.Scopes...),
	}
	driveSvc, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("drive service: %w", err)
	}
	docsSvc, err := docs.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("docs service: %w", err)
	}

	return &Publisher{
		drive:  &googleDrive{svc: driveSvc},
		docs:   &googleDocs{svc: docsSvc},
		target: target,
		logger: logger,
	}, nil
}

// newWithAPIs is the seam used by tests.
func newWithAPIs(dr driveAPI, dc docsAPI, target Target, logger zerolog.Logger) *Publisher {
	return &Publisher{drive: dr, docs: dc, target: target, logger: logger}
}

// Publish verifies the destination, creates a new document there, and
// applies the translated markdown in one batch.
func (p *Publisher) Publish(ctx context.Context, result generator.Result, title string) (*Ref, error) {
	if err := p.CheckDestination(ctx); err != nil {
		return nil, err
	}

	created, err := p.drive.CreateDoc(ctx, title, p.target.FolderID)
	if err != nil {
		return nil, fmt.Errorf("%w: creating document: %v", ErrPublishFailed, err)
	}
	p.logger.Info().Str("doc_id", created.Id).Str("title", title).Msg("document created")

	if reqs := Translate(result.Text); len(reqs) > 0 {
		if err := p.docs.BatchUpdate(ctx, created.Id, reqs); err != nil {
			return nil, fmt.Errorf("%w: applying content to %s: %v", ErrPublishFailed, created.Id, err)
		}
	}

	ref := &Ref{
		DocumentID: created.Id,
		URL:        "https://docs.google.com/document/d/" + created.Id + "/edit",
	}
	p.logger.Info().Str("url", ref.URL).Msg("document published")
	return ref, nil
}

// CheckDestination resolves the target folder and rejects anything that is
// not a folder under a shared drive.
func (p *Publisher) CheckDestination(ctx context.Context) error {
	folder, err := p.drive.GetFolder(ctx, p.target.FolderID)
	if err != nil {
		return fmt.Errorf("%w: resolving folder %s: %v", ErrPublishFailed, p.target.FolderID, err)
	}
	if folder.MimeType != folderMimeType {
		return fmt.Errorf("%w: %s is not a folder", ErrUnsupportedDestination, p.target.FolderID)
	}
	if folder.DriveId == "" {
		return fmt.Errorf("%w: folder %s is in personal storage and the service identity has no quota there", ErrUnsupportedDestination, p.target.FolderID)
	}
	if p.target.DriveID != "" && folder.DriveId != p.target.DriveID {
		return fmt.Errorf("%w: folder %s belongs to drive %s, not %s", ErrUnsupportedDestination, p.target.FolderID, folder.DriveId, p.target.DriveID)
	}
	return nil
}

type googleDrive struct{ svc *drive.Service }

func (g *googleDrive) GetFolder(ctx context.Context, id string) (*drive.File, error) {
	return g.svc.Files.Get(id).
		Fields("id", "name", "mimeType", "driveId").
		SupportsAllDrives(true).
		Context(ctx).Do()
}

func (g *googleDrive) CreateDoc(ctx context.Context, title, folderID string) (*drive.File, error) {
	return g.svc.Files.Create(&drive.File{
		Name:     title,
		MimeType: docMimeType,
		Parents:  []string{folderID},
	}).
		SupportsAllDrives(true).
		Fields("id").
		Context(ctx).Do()
}

type googleDocs struct{ svc *docs.Service }

func (g *googleDocs) BatchUpdate(ctx context.Context, docID string, reqs []*docs.Request) error {
	_, err := g.svc.Documents.BatchUpdate(docID, &docs.BatchUpdateDocumentRequest{Requests: reqs}).
		Context(ctx).Do()
	return err
}
