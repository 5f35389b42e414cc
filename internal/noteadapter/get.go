package noteadapter

import (
	"context"
	"errors"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/compat"
	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/noteid"
	"github.com/starford/ansuz/internal/registry"
)

// Get reads notes per the caller options. An identity that resolves to no
// profile yields an empty page, not an error; so does a single-id lookup
// of a missing note.
func (a *Adapter) Get(ctx context.Context, opts GetOptions) (*models.Page, error) {
	platform := platformOrDefault(opts.Platform)

	var handle string
	if opts.Identity != "" {
		h, ok, err := a.resolver.Resolve(ctx, opts.Identity, platform)
		if err != nil {
			return nil, err
		}
		if !ok {
			return emptyPage(), nil
		}
		handle = h
	}

	var page *registry.NotesPage
	if opts.Filter.ID != "" {
		id, err := noteid.Parse(opts.Filter.ID)
		if err != nil {
			return emptyPage(), nil
		}
		ev, err := a.index.GetNote(ctx, handle, id.Note)
		switch {
		case errors.Is(err, apperr.ErrNotFound):
			return emptyPage(), nil
		case err != nil:
			return nil, err
		}
		page = &registry.NotesPage{Count: 1, List: []registry.Event{*ev}}
	} else {
		var err error
		page, err = a.index.GetNotes(ctx, registry.NotesQuery{
			Handle:         handle,
			TargetURL:      opts.Filter.URL,
			Cursor:         opts.Cursor,
			Limit:          opts.Limit,
			IncludeDeleted: false,
		})
		if err != nil {
			return nil, err
		}
	}

	// Per-item mapping is independent, so a page maps concurrently;
	// slots keep the index order.
	list := make([]models.Note, len(page.List))
	var g errgroup.Group
	for i, ev := range page.List {
		g.Go(func() error {
			note, err := a.mapEvent(handle, opts.Identity, ev)
			if err != nil {
				return err
			}
			list[i] = note
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &models.Page{Total: page.Count, Cursor: page.Cursor, List: list}, nil
}

// mapEvent projects one raw ledger event into the generic schema.
func (a *Adapter) mapEvent(handle, identity string, ev registry.Event) (models.Note, error) {
	note, err := compat.FromStorage(ev.Metadata.Content)
	if err != nil {
		return models.Note{}, err
	}

	id := noteid.Format(handle, strconv.FormatInt(ev.NoteID, 10))
	note.ID = id
	note.DateCreated = ev.CreatedAt
	note.DateUpdated = ev.UpdatedAt
	if note.DatePublished == nil {
		note.DatePublished = ev.CreatedAt
	}
	note.Authors = []string{identity}
	note.Source = models.Source

	// Fixed ordering: target URL, rewritten source URI, creation tx,
	// then the update tx only when it differs.
	urls := make([]string, 0, 4)
	if ev.ToURI != "" {
		urls = append(urls, ev.ToURI)
	}
	if ev.URI != "" {
		urls = append(urls, a.rewriter.Rewrite(ev.URI))
	}
	urls = append(urls, a.explorer+ev.TransactionHash)
	if ev.UpdatedTransactionHash != "" && ev.UpdatedTransactionHash != ev.TransactionHash {
		urls = append(urls, a.explorer+ev.UpdatedTransactionHash)
	}
	note.RelatedURLs = urls

	txs := []string{ev.TransactionHash}
	if ev.UpdatedTransactionHash != ev.TransactionHash {
		txs = append(txs, ev.UpdatedTransactionHash)
	}
	note.Metadata = &models.Metadata{
		Network:      models.Network,
		Proof:        id,
		BlockNumber:  ev.BlockNumber,
		Owner:        ev.Owner,
		Transactions: txs,
	}

	for i := range note.Attachments {
		att := &note.Attachments[i]
		if att.Address != "" {
			att.Address = a.rewriter.Rewrite(att.Address)
			if att.MimeType == "" {
				att.MimeType = a.sniff(att.Address)
			}
		}
	}

	return note, nil
}

func emptyPage() *models.Page {
	return &models.Page{Total: 0, List: []models.Note{}}
}
