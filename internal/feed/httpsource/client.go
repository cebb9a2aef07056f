// Package httpsource conecta el feed.Controller con la API HTTP:
// GET /swipe/candidates para recargar y POST /swipes para registrar.
package httpsource

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"pet-adoption/internal/domain/candidates"
	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/domain/swipes"
	"pet-adoption/internal/feed"
	"pet-adoption/internal/platform/httpclient"
)

type Client struct {
	api *httpclient.Client
}

// Credentials: Token (Bearer) en producción o DebugUserID en modo dev.
type Credentials struct {
	Token       string
	DebugUserID string
}

func New(baseURL string, creds Credentials, timeout time.Duration, opts ...httpclient.Option) (*Client, error) {
	if creds.Token != "" {
		opts = append(opts, httpclient.WithHeader("Authorization", "Bearer "+creds.Token))
	}
	if creds.DebugUserID != "" {
		opts = append(opts, httpclient.WithHeader("X-Debug-User-ID", creds.DebugUserID))
	}
	api, err := httpclient.New(baseURL, timeout, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{api: api}, nil
}

type candidatesPage struct {
	Pets    []pets.PetResponse `json:"pets"`
	HasMore bool               `json:"has_more"`
}

func (c *Client) NextCandidates(ctx context.Context, limit int) (candidates.Page, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var page candidatesPage
	if err := c.api.GetJSON(ctx, "/swipe/candidates", q, &page); err != nil {
		return candidates.Page{}, fmt.Errorf("fetch candidates: %w", err)
	}

	out := candidates.Page{Pets: make([]pets.Pet, 0, len(page.Pets)), HasMore: page.HasMore}
	for _, p := range page.Pets {
		out.Pets = append(out.Pets, fromResponse(p))
	}
	return out, nil
}

type recordSwipeRequest struct {
	PetID     string `json:"pet_id"`
	Direction string `json:"direction"`
}

// RecordResult es lo que responde POST /swipes.
type RecordResult struct {
	Recorded  bool   `json:"recorded"`
	Duplicate bool   `json:"duplicate"`
	MatchID   string `json:"match_id,omitempty"`
}

func (c *Client) RecordSwipe(ctx context.Context, petID string, dir swipes.Direction) error {
	_, err := c.Record(ctx, petID, dir)
	return err
}

// Record es RecordSwipe con el detalle de la respuesta.
func (c *Client) Record(ctx context.Context, petID string, dir swipes.Direction) (RecordResult, error) {
	var res RecordResult
	if _, err := c.api.PostJSON(ctx, "/swipes", recordSwipeRequest{PetID: petID, Direction: string(dir)}, &res); err != nil {
		return RecordResult{}, fmt.Errorf("record swipe: %w", err)
	}
	return res, nil
}

func fromResponse(r pets.PetResponse) pets.Pet {
	return pets.Pet{
		ID:          r.ID,
		OwnerUserID: r.OwnerUserID,
		Name:        r.Name,
		Species:     r.Species,
		Breed:       r.Breed,
		Gender:      r.Gender,
		Size:        r.Size,
		AgeMonths:   r.AgeMonths,
		Description: r.Description,
		Status:      r.Status,
		Images:      r.Images,
		Location:    r.Location,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

var (
	_ feed.Source   = (*Client)(nil)
	_ feed.Recorder = (*Client)(nil)
)
