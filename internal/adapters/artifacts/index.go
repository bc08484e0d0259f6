package artifacts

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/trebuchet-org/nftops/internal/domain"
	"github.com/trebuchet-org/nftops/internal/domain/config"
	"github.com/trebuchet-org/nftops/internal/usecase"
)

// Index discovers Hardhat artifacts below the artifacts directory
type Index struct {
	dir string

	mu      sync.RWMutex
	indexed bool
	byFQN   map[string]*domain.Artifact   // "source:name"
	byName  map[string][]*domain.Artifact // contract name -> all artifacts with that name
}

// NewIndex creates an index rooted at the configured artifacts directory
func NewIndex(cfg *config.RuntimeConfig) *Index {
	return NewIndexAt(cfg.ArtifactsDir())
}

// NewIndexAt creates an index rooted at dir
func NewIndexAt(dir string) *Index {
	return &Index{dir: dir}
}

// Index walks the artifacts directory. It is called lazily by Get.
func (i *Index) Index() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.byFQN = make(map[string]*domain.Artifact)
	i.byName = make(map[string][]*domain.Artifact)

	if _, err := os.Stat(i.dir); err != nil {
		return fmt.Errorf("artifacts directory %s not found, run `npx hardhat compile` first: %w", i.dir, err)
	}

	err := filepath.WalkDir(i.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == "build-info" {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".json" || strings.HasSuffix(path, ".dbg.json") {
			return nil
		}
		return i.processArtifact(path)
	})
	if err != nil {
		return err
	}

	i.indexed = true
	return nil
}

func (i *Index) processArtifact(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var artifact domain.Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil // not an artifact
	}
	if artifact.ContractName == "" || artifact.SourceName == "" {
		return nil
	}
	artifact.Path = path

	i.byFQN[artifact.FullyQualifiedName()] = &artifact
	i.byName[artifact.ContractName] = append(i.byName[artifact.ContractName], &artifact)
	return nil
}

func (i *Index) ensureIndexed() error {
	i.mu.RLock()
	indexed := i.indexed
	i.mu.RUnlock()
	if indexed {
		return nil
	}
	return i.Index()
}

// Get returns an artifact by bare contract name or "source.sol:Name"
func (i *Index) Get(name string) (*domain.Artifact, error) {
	if err := i.ensureIndexed(); err != nil {
		return nil, err
	}

	i.mu.RLock()
	defer i.mu.RUnlock()

	if strings.Contains(name, ":") {
		if a, ok := i.byFQN[name]; ok {
			return a, nil
		}
		return nil, fmt.Errorf("%w: %s", domain.ErrArtifactNotFound, name)
	}

	matches := i.byName[name]
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %s", domain.ErrArtifactNotFound, name)
	case 1:
		return matches[0], nil
	default:
		paths := make([]string, len(matches))
		for j, m := range matches {
			paths[j] = m.SourceName
		}
		return nil, domain.AmbiguousArtifactErr{Name: name, Paths: paths}
	}
}

// BuildInfo follows the artifact's .dbg.json pointer to its build-info file
func (i *Index) BuildInfo(artifact *domain.Artifact) (*domain.BuildInfo, error) {
	dbgPath := strings.TrimSuffix(artifact.Path, ".json") + ".dbg.json"
	data, err := os.ReadFile(dbgPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", dbgPath, err)
	}

	var dbg struct {
		BuildInfo string `json:"buildInfo"`
	}
	if err := json.Unmarshal(data, &dbg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", dbgPath, err)
	}
	if dbg.BuildInfo == "" {
		return nil, fmt.Errorf("%s has no buildInfo reference", dbgPath)
	}

	buildInfoPath := dbg.BuildInfo
	if !filepath.IsAbs(buildInfoPath) {
		buildInfoPath = filepath.Join(filepath.Dir(dbgPath), buildInfoPath)
	}

	data, err = os.ReadFile(buildInfoPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read build info: %w", err)
	}

	var info domain.BuildInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("failed to parse build info %s: %w", buildInfoPath, err)
	}
	if info.SolcLongVersion == "" || len(info.Input) == 0 {
		return nil, fmt.Errorf("build info %s is missing solc version or input", buildInfoPath)
	}
	return &info, nil
}

// Ensure the adapter implements the interface
var _ usecase.ArtifactStore = (*Index)(nil)
