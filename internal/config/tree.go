package config

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Ключи параметров reader/writer
const (
	KeyConnection      = "connection"
	KeyJdbcURL         = "jdbcUrl"
	KeyTable           = "table"
	KeyQuerySQL        = "querySql"
	KeyUsername        = "username"
	KeyPassword        = "password"
	KeyAutoCreateTable = "autoCreateTable"
)

// Tree - иерархический конфиг только для чтения.
// Пути адресуются через точку и индексы: connection[0].table[0]
type Tree struct {
	root any
}

type segment struct {
	key     string
	index   int
	isIndex bool
}

func NewTree(root any) *Tree {
	return &Tree{root: root}
}

// ParseTree разбирает YAML (или JSON, как его подмножество) в дерево
func ParseTree(data []byte) (*Tree, error) {
	var root any
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("error decoding YAML: %w", err)
	}
	return NewTree(root), nil
}

func parsePath(path string) ([]segment, error) {
	if path == "" {
		return nil, nil
	}
	var segs []segment
	for _, part := range strings.Split(path, ".") {
		if part == "" {
			return nil, fmt.Errorf("empty element in path %q", path)
		}
		name, rest := part, ""
		if i := strings.IndexByte(part, '['); i >= 0 {
			name, rest = part[:i], part[i:]
		}
		if name != "" {
			segs = append(segs, segment{key: name})
		}
		for rest != "" {
			end := strings.IndexByte(rest, ']')
			if rest[0] != '[' || end < 0 {
				return nil, fmt.Errorf("malformed index in path %q", path)
			}
			n, err := strconv.Atoi(rest[1:end])
			if err != nil || n < 0 {
				return nil, fmt.Errorf("bad index %q in path %q", rest[1:end], path)
			}
			segs = append(segs, segment{index: n, isIndex: true})
			rest = rest[end+1:]
		}
	}
	return segs, nil
}

// Get возвращает значение по пути. Невалидный путь считается отсутствующим значением
func (t *Tree) Get(path string) (any, bool) {
	if t == nil {
		return nil, false
	}
	segs, err := parsePath(path)
	if err != nil {
		return nil, false
	}
	cur := t.root
	for _, s := range segs {
		if s.isIndex {
			list, ok := cur.([]any)
			if !ok || s.index >= len(list) {
				return nil, false
			}
			cur = list[s.index]
			continue
		}
		switch m := cur.(type) {
		case map[string]any:
			v, ok := m[s.key]
			if !ok {
				return nil, false
			}
			cur = v
		case map[any]any:
			v, ok := m[s.key]
			if !ok {
				return nil, false
			}
			cur = v
		default:
			return nil, false
		}
	}
	return cur, cur != nil
}

// Exists проверяет наличие непустого значения по пути
func (t *Tree) Exists(path string) bool {
	_, ok := t.Get(path)
	return ok
}

// Sub возвращает поддерево, nil если пути нет
func (t *Tree) Sub(path string) *Tree {
	v, ok := t.Get(path)
	if !ok {
		return nil
	}
	return NewTree(v)
}

// String возвращает скалярное значение как строку
func (t *Tree) String(path string) (string, bool) {
	v, ok := t.Get(path)
	if !ok {
		return "", false
	}
	return scalarString(v)
}

// Lookup возвращает первое найденное скалярное значение из нескольких путей
func (t *Tree) Lookup(paths ...string) (string, bool) {
	for _, path := range paths {
		if v, ok := t.String(path); ok {
			return v, true
		}
	}
	return "", false
}

// FirstString принимает как скаляр, так и список (берется первый элемент).
// jdbcUrl у reader задается списком, у writer - строкой
func (t *Tree) FirstString(path string) (string, bool) {
	v, ok := t.Get(path)
	if !ok {
		return "", false
	}
	if list, isList := v.([]any); isList {
		if len(list) == 0 {
			return "", false
		}
		return scalarString(list[0])
	}
	return scalarString(v)
}

// Strings возвращает список строк. Одиночный скаляр превращается в список из одного элемента
func (t *Tree) Strings(path string) []string {
	v, ok := t.Get(path)
	if !ok {
		return nil
	}
	list, isList := v.([]any)
	if !isList {
		if s, ok := scalarString(v); ok {
			return []string{s}
		}
		return nil
	}
	result := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := scalarString(item); ok {
			result = append(result, s)
		}
	}
	return result
}

// Bool возвращает флаг или def, если значения нет или оно не разбирается
func (t *Tree) Bool(path string, def bool) bool {
	v, ok := t.Get(path)
	if !ok {
		return def
	}
	switch b := v.(type) {
	case bool:
		return b
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		if err != nil {
			return def
		}
		return parsed
	default:
		return def
	}
}

// List возвращает элементы списка как поддеревья
func (t *Tree) List(path string) []*Tree {
	v, ok := t.Get(path)
	if !ok {
		return nil
	}
	list, isList := v.([]any)
	if !isList {
		return nil
	}
	result := make([]*Tree, 0, len(list))
	for _, item := range list {
		result = append(result, NewTree(item))
	}
	return result
}

// Raw отдает исходное значение корня
func (t *Tree) Raw() any {
	if t == nil {
		return nil
	}
	return t.root
}

func scalarString(v any) (string, bool) {
	switch s := v.(type) {
	case nil:
		return "", false
	case string:
		return s, true
	case bool, int, int64, float64, uint64:
		return fmt.Sprint(s), true
	default:
		return "", false
	}
}
