package lessonspec

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aprenda/tutor/pkg/domain"
	"github.com/aprenda/tutor/pkg/ports"
)

//go:embed topics.yaml
var defaultCatalogYAML []byte

// TopicInfo is the catalog listing entry exposed to clients.
type TopicInfo struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Level       string `json:"level" yaml:"level"`
}

type catalogFile struct {
	Topics []map[string]any `yaml:"topics"`
}

// Catalog holds the known grammar topics and builds lesson specs for them.
// It is read-only after construction and safe for concurrent use.
type Catalog struct {
	records map[string]map[string]any
	order   []string
	builder ports.LessonProvider
}

// NewCatalog loads the embedded default topic catalog.
func NewCatalog() (*Catalog, error) {
	return parseCatalog(defaultCatalogYAML)
}

// LoadCatalog reads a topic catalog from a YAML file on disk.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read topic catalog: %w", err)
	}
	return parseCatalog(data)
}

func parseCatalog(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse topic catalog: %w", err)
	}
	c := &Catalog{
		records: make(map[string]map[string]any, len(file.Topics)),
		builder: NewBuilder(),
	}
	for _, record := range file.Topics {
		id, _ := record["id"].(string)
		if id == "" {
			return nil, fmt.Errorf("topic catalog entry missing id")
		}
		if _, dup := c.records[id]; dup {
			return nil, fmt.Errorf("duplicate topic id %q in catalog", id)
		}
		c.records[id] = record
		c.order = append(c.order, id)
	}
	return c, nil
}

// Topics lists the catalog entries in declaration order.
func (c *Catalog) Topics() []TopicInfo {
	infos := make([]TopicInfo, 0, len(c.order))
	for _, id := range c.order {
		record := c.records[id]
		title, _ := record["title"].(string)
		desc, _ := record["description"].(string)
		level, _ := record["level"].(string)
		infos = append(infos, TopicInfo{ID: id, Title: title, Description: desc, Level: level})
	}
	return infos
}

// Spec builds the lesson spec for a topic, or domain.ErrUnknownTopic when
// the id is not in the catalog.
func (c *Catalog) Spec(topicID, languageMode string) (*domain.LessonSpec, error) {
	record, ok := c.records[topicID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownTopic, topicID)
	}
	return c.builder.Build(record, languageMode)
}
