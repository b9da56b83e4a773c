package gitinfo

import (
	"github.com/go-git/go-git/v5"
)

// Inspector implements domain.RepoInspector using go-git. The diagnostic
// report stamps the checkout's HEAD so a pasted report identifies which
// revision of UFO² was examined.
type Inspector struct{}

// New creates an Inspector.
func New() *Inspector { return &Inspector{} }

// CommitHash returns the HEAD hash of the repository at root. ok is false
// when root is not a git repository or HEAD cannot be resolved (fresh
// clone with no commits); diagnosis proceeds without the stamp.
func (i *Inspector) CommitHash(root string) (string, bool) {
	repo, err := git.PlainOpen(root)
	if err != nil {
		return "", false
	}
	head, err := repo.Head()
	if err != nil {
		return "", false
	}
	return head.Hash().String(), true
}
