package testevents

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/okian/hooklog/internal/domain/payload"
	"github.com/okian/hooklog/pkg/logger"
)

// Delivery variants generated by the harness. The dropping variants carry
// payloads the service must acknowledge without storing.
const (
	variantPush        = 0
	variantPullRequest = 1
	variantMerge       = 2
	variantEmptyPush   = 3 // head_commit null, must drop
	variantNoSender    = 4 // sender without login, must drop
	variantCount       = 5
)

// Delivery is one generated webhook request ready for signing.
type Delivery struct {
	Event string // X-GitHub-Event label
	Body  []byte
	// Stored is true when the service is expected to persist a record.
	Stored bool
}

// randomInt returns a uniform int below n using crypto/rand.
func randomInt(n int64) int64 {
	v, _ := rand.Int(rand.Reader, big.NewInt(n))
	return v.Int64()
}

// randomSHA returns a 40-char hex string shaped like a commit SHA.
func randomSHA() string {
	b := make([]byte, 20)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// generateDeliveries builds cfg.NumEvents webhook deliveries with a mix of
// stored and dropped variants.
func generateDeliveries(ctx context.Context, cfg *Config) ([]Delivery, error) {
	logger.Get().Info(ctx, "generating webhook deliveries", logger.Int("numEvents", cfg.NumEvents))

	now := time.Now().UTC().Format(time.RFC3339)
	repo := &payload.Repository{ID: 1, Name: "hooklog-fixture", FullName: "okian/hooklog-fixture"}

	out := make([]Delivery, cfg.NumEvents)
	for i := 0; i < cfg.NumEvents; i++ {
		var (
			d   Delivery
			err error
		)
		switch randomInt(variantCount) {
		case variantPush:
			d, err = pushDelivery(repo, now, true)
		case variantPullRequest:
			d, err = pullRequestDelivery(repo, now, false, true)
		case variantMerge:
			d, err = pullRequestDelivery(repo, now, true, true)
		case variantEmptyPush:
			d, err = pushDelivery(repo, now, false)
		case variantNoSender:
			d, err = pullRequestDelivery(repo, now, false, false)
		}
		if err != nil {
			return nil, fmt.Errorf("generate delivery %d: %w", i, err)
		}
		out[i] = d
	}
	return out, nil
}

func pushDelivery(repo *payload.Repository, ts string, withHead bool) (Delivery, error) {
	author := "tester-" + uuid.New().String()[:8]
	sha := randomSHA()
	p := payload.PushPayload{
		Ref:        "refs/heads/main",
		Before:     randomSHA(),
		After:      sha,
		Repository: repo,
		Pusher:     &payload.User{Name: author},
		Commits:    []payload.Commit{},
	}
	if withHead {
		p.Commits = []payload.Commit{{
			ID:        sha,
			Message:   "fixture commit",
			Timestamp: ts,
			Author:    payload.User{Name: author},
		}}
		p.HeadCommit = &p.Commits[0]
	}
	body, err := json.Marshal(p)
	if err != nil {
		return Delivery{}, err
	}
	return Delivery{Event: "push", Body: body, Stored: withHead}, nil
}

func pullRequestDelivery(repo *payload.Repository, ts string, merged, withLogin bool) (Delivery, error) {
	pr := payload.PullRequest{
		ID:        randomInt(1 << 30),
		Number:    int(randomInt(10000)),
		State:     "open",
		Title:     "fixture pull request",
		Merged:    merged,
		CreatedAt: ts,
		UpdatedAt: ts,
		Head:      payload.Ref{Ref: "feature-" + uuid.New().String()[:8]},
		Base:      payload.Ref{Ref: "main"},
	}
	if merged {
		pr.State = "closed"
		pr.MergedAt = ts
	}
	sender := &payload.User{}
	if withLogin {
		sender.Login = "tester-" + uuid.New().String()[:8]
	}
	p := payload.PullRequestPayload{
		Action:      "closed",
		Number:      pr.Number,
		PullRequest: &pr,
		Repository:  repo,
		Sender:      sender,
	}
	if !merged {
		p.Action = "opened"
	}
	body, err := json.Marshal(p)
	if err != nil {
		return Delivery{}, err
	}
	return Delivery{Event: "pull_request", Body: body, Stored: withLogin}, nil
}
