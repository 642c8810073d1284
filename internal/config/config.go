package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix - префикс переменных окружения, переопределяющих конфиг задания.
// DBAC_WRITER_PARAMETER_AUTOCREATETABLE -> writer.parameter.autoCreateTable
const EnvPrefix = "DBAC_"

// Имена переменных окружения регистронезависимы, а ключи параметров - в camelCase
var envKeys = map[string]string{
	strings.ToLower(KeyJdbcURL):         KeyJdbcURL,
	strings.ToLower(KeyQuerySQL):        KeyQuerySQL,
	strings.ToLower(KeyAutoCreateTable): KeyAutoCreateTable,
}

// envKey переводит имя переменной без префикса в путь koanf
func envKey(name string) string {
	parts := strings.Split(strings.ToLower(name), "_")
	for i, p := range parts {
		if key, ok := envKeys[p]; ok {
			parts[i] = key
		}
	}
	return strings.Join(parts, ".")
}

type LoggerConfig struct {
	Level    string `koanf:"level"`
	Target   string `koanf:"target"`
	Filename string `koanf:"filename"`
}

// Job - задание синхронизации: настройки логгера и параметры reader/writer
type Job struct {
	Logger LoggerConfig

	ReaderName string
	WriterName string
	// Параметры reader и writer, как они заданы в секциях parameter
	Reader *Tree
	Writer *Tree
}

// Флаги CLI, которые можно переложить в конфиг
var flagKeys = map[string]string{
	"log-level":  "logger.level",
	"log-target": "logger.target",
	"log-file":   "logger.filename",
}

func (j *Job) Validate() error {
	if j.Reader == nil {
		return errors.New("reader.parameter cannot be empty")
	}
	if j.Writer == nil {
		return errors.New("writer.parameter cannot be empty")
	}
	if !j.Reader.Exists(KeyConnection) {
		return errors.New("reader.parameter.connection cannot be empty")
	}
	if !j.Writer.Exists(KeyConnection) {
		return errors.New("writer.parameter.connection cannot be empty")
	}
	switch j.Logger.Target {
	case "stdout", "stderr":
	case "file":
		if j.Logger.Filename == "" {
			return errors.New("logger.filename is required for file target")
		}
	default:
		return fmt.Errorf("unknown logger target: %s", j.Logger.Target)
	}
	return nil
}

// LoadJob читает задание. Приоритет: флаги > переменные окружения > файл > значения по умолчанию
func LoadJob(filename string, flags *pflag.FlagSet) (*Job, error) {
	if filename == "" {
		return nil, errors.New("job file is required")
	}
	if _, err := os.Stat(filename); err != nil {
		return nil, fmt.Errorf("error opening job file: %w", err)
	}

	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"logger.level":  "info",
		"logger.target": "stdout",
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if err := k.Load(file.Provider(filename), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("error reading job file %s: %w", filename, err)
	}

	// DBAC_LOGGER_LEVEL -> logger.level
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return envKey(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key, ok := flagKeys[f.Name]
			if !ok {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	job := &Job{
		ReaderName: k.String("reader.name"),
		WriterName: k.String("writer.name"),
	}
	if err := k.Unmarshal("logger", &job.Logger); err != nil {
		return nil, fmt.Errorf("unable to decode logger config: %w", err)
	}
	if k.Exists("reader.parameter") {
		job.Reader = NewTree(k.Cut("reader.parameter").Raw())
	}
	if k.Exists("writer.parameter") {
		job.Writer = NewTree(k.Cut("writer.parameter").Raw())
	}

	if err := job.Validate(); err != nil {
		return nil, fmt.Errorf("invalid job config: %w", err)
	}
	return job, nil
}
