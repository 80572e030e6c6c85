package ps

import (
	"fmt"
	"time"

	"github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing/object"

	"github.com/gotlim/examdb/core"
)

// Record commits the given database file bytes under name and returns the
// resulting transaction. Recording identical bytes twice still produces a
// new commit, so every run that asks for a snapshot gets one.
func (p *Persistence) Record(name string, data []byte, identity core.Identity) (Transaction, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ensureInitialized(); err != nil {
		return Transaction{}, err
	}

	wt, err := p.repo.Worktree()
	if err != nil {
		return Transaction{}, fmt.Errorf("failed to get worktree: %w", err)
	}

	file, err := wt.Filesystem.Create(name)
	if err != nil {
		return Transaction{}, fmt.Errorf("failed to stage %s: %w", name, err)
	}
	if _, err := file.Write(data); err != nil {
		file.Close()
		return Transaction{}, fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := file.Close(); err != nil {
		return Transaction{}, fmt.Errorf("failed to close %s: %w", name, err)
	}

	if _, err := wt.Add(name); err != nil {
		return Transaction{}, fmt.Errorf("failed to add %s: %w", name, err)
	}

	when := time.Now()
	hash, err := wt.Commit(fmt.Sprintf("snapshot %s", name), &git.CommitOptions{
		Author: &object.Signature{
			Name:  identity.Name,
			Email: identity.Email,
			When:  when,
		},
		AllowEmptyCommits: true,
	})
	if err != nil {
		return Transaction{}, fmt.Errorf("failed to commit snapshot: %w", err)
	}

	return Transaction{
		Id:     hash.String(),
		When:   when,
		Author: identity.String(),
	}, nil
}
