// Package nameservice reads a folder of node keys and creates a name
// service lookup for the node ids they produce.
package nameservice

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/ardanlabs/powledger/foundation/blockchain/identity"
)

const keyExtension = ".ecdsa"

// NameService maintains a map of node ids for name lookup.
type NameService struct {
	nodes map[string]string
}

// New constructs a name service with the node ids of the keys found under
// root. A missing root produces an empty name service.
func New(root string) (*NameService, error) {
	ns := NameService{
		nodes: make(map[string]string),
	}

	fn := func(fileName string, info fs.FileInfo, err error) error {
		if err != nil {
			if fileName == root && errors.Is(err, fs.ErrNotExist) {
				return filepath.SkipDir
			}
			return fmt.Errorf("walkdir failure: %w", err)
		}

		if path.Ext(fileName) != keyExtension {
			return nil
		}

		nodeID, err := identity.FromKeyFile(fileName)
		if err != nil {
			return err
		}

		ns.nodes[nodeID] = strings.TrimSuffix(path.Base(fileName), keyExtension)

		return nil
	}

	if err := filepath.Walk(root, fn); err != nil {
		return nil, fmt.Errorf("walking directory: %w", err)
	}

	return &ns, nil
}

// Lookup returns the name for the specified node id or the node id itself
// when no name is known.
func (ns *NameService) Lookup(nodeID string) string {
	name, exists := ns.nodes[nodeID]
	if !exists {
		return nodeID
	}
	return name
}

// Copy returns a copy of the map of node ids and names.
func (ns *NameService) Copy() map[string]string {
	cpy := make(map[string]string, len(ns.nodes))
	for nodeID, name := range ns.nodes {
		cpy[nodeID] = name
	}
	return cpy
}
