// Пакет comparison содержит таблицу сравнения редакторов: оценки по аспектам, рекомендации по выбору
// и схемы архитектуры. Данные встроены в бинарник в формате YAML.
package comparison

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator"
	"gopkg.in/yaml.v3"
)

//go:embed comparison.yaml
var comparisonYAML []byte

const MaxRating = 5

type Table struct {
	Title   string   `yaml:"title" json:"title" validate:"required"`
	Editors []Editor `yaml:"editors" json:"editors" validate:"required,dive"`
	Aspects []Aspect `yaml:"aspects" json:"aspects" validate:"required,dive"`
}

type Editor struct {
	Key          string       `yaml:"key" json:"key" validate:"required"`
	Title        string       `yaml:"title" json:"title" validate:"required"`
	NPM          string       `yaml:"npm" json:"npm" validate:"required,url"`
	Badge        string       `yaml:"badge" json:"badge" validate:"omitempty,hexcolor"`
	Architecture Architecture `yaml:"architecture" json:"architecture"`
	Guide        []string     `yaml:"guide" json:"guide"`
}

type Architecture struct {
	Root  string   `yaml:"root" json:"root" validate:"required"`
	Parts []string `yaml:"parts" json:"parts"`
}

type Aspect struct {
	Name    string            `yaml:"name" json:"name" validate:"required"`
	Ratings map[string]Rating `yaml:"ratings" json:"ratings" validate:"required,dive"`
}

// Rating - оценка аспекта: чем выше, тем сложнее или сильнее выражен аспект.
type Rating struct {
	Rating      int    `yaml:"rating" json:"rating" validate:"min=1,max=5"`
	Text        string `yaml:"text" json:"text" validate:"required"`
	Description string `yaml:"description" json:"description"`
}

var (
	loadOnce sync.Once
	loaded   *Table
	loadErr  error
)

// Load возвращает встроенную таблицу. Разбор и проверка выполняются один раз.
func Load() (*Table, error) {
	loadOnce.Do(func() {
		loaded, loadErr = Parse(comparisonYAML)
	})
	return loaded, loadErr
}

// Parse разбирает и проверяет таблицу: у каждого аспекта должна быть оценка каждого редактора.
func Parse(data []byte) (*Table, error) {
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, err
	}
	if err := validator.New().Struct(t); err != nil {
		return nil, err
	}
	for _, a := range t.Aspects {
		for _, e := range t.Editors {
			if _, ok := a.Ratings[e.Key]; !ok {
				return nil, fmt.Errorf("aspect %q has no rating for %q", a.Name, e.Key)
			}
		}
	}
	return &t, nil
}

// Aspect ищет аспект по имени без учета регистра.
func (t *Table) Aspect(name string) (Aspect, bool) {
	for _, a := range t.Aspects {
		if strings.EqualFold(a.Name, strings.TrimSpace(name)) {
			return a, true
		}
	}
	return Aspect{}, false
}

func (t *Table) Editor(key string) (Editor, bool) {
	for _, e := range t.Editors {
		if e.Key == key {
			return e, true
		}
	}
	return Editor{}, false
}

// Stars рисует оценку звездами: ⭐ за каждый балл и ☆ за недостающие до пяти.
func Stars(rating int) string {
	rating = max(0, min(rating, MaxRating))
	return strings.Repeat("⭐", rating) + strings.Repeat("☆", MaxRating-rating)
}

// RatingColor - зеленый для простого, желтый для среднего и красный для сложного.
func RatingColor(rating int) string {
	if rating <= 2 {
		return "#28a745"
	}
	if rating <= 3 {
		return "#ffc107"
	}
	return "#dc3545"
}

// Tree рисует архитектуру редактора псевдографикой.
func (a Architecture) Tree() string {
	var sb strings.Builder
	sb.WriteString(a.Root)
	for i, part := range a.Parts {
		if i == len(a.Parts)-1 {
			sb.WriteString("\n└── ")
		} else {
			sb.WriteString("\n├── ")
		}
		sb.WriteString(part)
	}
	return sb.String()
}
