package ps

import (
	"fmt"

	"github.com/go-git/go-git/v6/plumbing"
)

// Retrieve returns the database file bytes recorded under name in the
// snapshot with the given commit id.
func (p *Persistence) Retrieve(name, id string) ([]byte, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if err := p.ensureInitialized(); err != nil {
		return nil, err
	}

	commit, err := p.repo.CommitObject(plumbing.NewHash(id))
	if err != nil {
		return nil, fmt.Errorf("snapshot %s not found: %w", id, err)
	}

	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", id, err)
	}

	file, err := tree.File(name)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s does not contain %s: %w", id, name, err)
	}

	contents, err := file.Contents()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s from snapshot %s: %w", name, id, err)
	}

	return []byte(contents), nil
}
