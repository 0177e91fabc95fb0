package rpc

import (
	"context"
	"errors"

	"github.com/vmkteam/zenrpc/v2"

	"github.com/daniilsolovey/taltos-portal/internal/content"
	"github.com/daniilsolovey/taltos-portal/internal/db"
)

//go:generate zenrpc

// ContentService exposes the public content operations over JSON-RPC.
type ContentService struct {
	zenrpc.Service
	manager *content.Manager
}

func NewContentService(manager *content.Manager) *ContentService {
	return &ContentService{manager: manager}
}

// News lists news posts in insertion order.
//
//zenrpc:lang only posts in this language
//zenrpc:limit=4 maximum number of posts
//zenrpc:return list of news posts with public id
//zenrpc:500 internal server error
//zenrpc:503 storage unavailable
func (s *ContentService) News(ctx context.Context, lang *string, limit *int) ([]map[string]any, error) {
	docs, err := s.manager.News(ctx, deref(lang), *limit)
	if err != nil {
		return nil, newError(err)
	}

	return documents(docs), nil
}

// Reviews lists visitor reviews.
//
//zenrpc:lang only reviews in this language
//zenrpc:limit=10 maximum number of reviews
//zenrpc:return list of reviews with public id
//zenrpc:500 internal server error
//zenrpc:503 storage unavailable
func (s *ContentService) Reviews(ctx context.Context, lang *string, limit *int) ([]map[string]any, error) {
	docs, err := s.manager.Reviews(ctx, deref(lang), *limit)
	if err != nil {
		return nil, newError(err)
	}

	return documents(docs), nil
}

// Horses lists the horses of the stable.
//
//zenrpc:limit=50 maximum number of horses
//zenrpc:return list of horses with public id
//zenrpc:500 internal server error
//zenrpc:503 storage unavailable
func (s *ContentService) Horses(ctx context.Context, limit *int) ([]map[string]any, error) {
	docs, err := s.manager.Horses(ctx, *limit)
	if err != nil {
		return nil, newError(err)
	}

	return documents(docs), nil
}

// Collections lists the collections that currently hold documents.
//
//zenrpc:return collection names
//zenrpc:500 internal server error
//zenrpc:503 storage unavailable
func (s *ContentService) Collections(ctx context.Context) ([]string, error) {
	names, err := s.manager.Collections(ctx)
	if err != nil {
		return nil, newError(err)
	}

	return names, nil
}

// Contact stores a contact message.
//
//zenrpc:message contact message
//zenrpc:return ok flag and id of the stored message
//zenrpc:422 validation failed
//zenrpc:500 internal server error
//zenrpc:503 storage unavailable
func (s *ContentService) Contact(ctx context.Context, message content.ContactMessage) (*CreatedResult, error) {
	id, err := s.manager.SubmitContact(ctx, &message)
	if err != nil {
		return nil, newError(err)
	}

	return &CreatedResult{OK: true, ID: id}, nil
}

// Booking stores a booking request.
//
//zenrpc:request booking request
//zenrpc:return ok flag, id of the stored request and confirmation text
//zenrpc:422 validation failed
//zenrpc:500 internal server error
//zenrpc:503 storage unavailable
func (s *ContentService) Booking(ctx context.Context, request content.BookingRequest) (*BookingResult, error) {
	id, err := s.manager.SubmitBooking(ctx, &request)
	if err != nil {
		return nil, newError(err)
	}

	return &BookingResult{OK: true, ID: id, Message: content.BookingConfirmation}, nil
}

// newError maps manager errors onto JSON-RPC errors with HTTP-like codes.
func newError(err error) *zenrpc.Error {
	var verr *content.ValidationError
	switch {
	case errors.As(err, &verr):
		return &zenrpc.Error{Code: 422, Message: "validation failed", Data: verr.Fields}
	case errors.Is(err, db.ErrUnavailable):
		return zenrpc.NewStringError(503, "storage unavailable")
	default:
		return zenrpc.NewStringError(500, "internal error")
	}
}

func documents(docs []db.Document) []map[string]any {
	out := make([]map[string]any, len(docs))
	for i := range docs {
		out[i] = docs[i]
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
