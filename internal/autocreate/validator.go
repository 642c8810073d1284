package autocreate

import (
	"fmt"
	"strings"

	"db_autocreate/internal/config"
	"db_autocreate/internal/tables"
)

// Enabled - включено ли автосоздание. Флаг отсутствует или false - ничего не делаем
func Enabled(writer *config.Tree) bool {
	return writer.Bool(config.KeyAutoCreateTable, false)
}

// CountDestinationTables считает таблицы writer по всем connection после раскрытия шаблонов
func CountDestinationTables(writer *config.Tree) (int, error) {
	blocks := writer.List(config.KeyConnection)
	if len(blocks) == 0 {
		return 0, configError("writer connection is not configured")
	}

	total := 0
	for i, block := range blocks {
		jdbcURL, _ := block.FirstString(config.KeyJdbcURL)
		if strings.TrimSpace(jdbcURL) == "" {
			return 0, configError("jdbcUrl of writer connection[%d] is not configured", i)
		}

		names := block.Strings(config.KeyTable)
		if len(names) == 0 {
			return 0, configError("table of writer connection[%d] is not configured", i)
		}

		expanded := tables.Expand(names)
		if len(expanded) == 0 {
			return 0, configError("table of writer connection[%d] resolves to no tables: %s",
				i, strings.Join(names, ","))
		}
		total += len(expanded)
	}
	return total, nil
}

// ValidateDestination - автосоздание работает только для одной таблицы writer
func ValidateDestination(writer *config.Tree) error {
	n, err := CountDestinationTables(writer)
	if err != nil {
		return err
	}
	if n != 1 {
		return configError("auto create table supports exactly one writer table, %d configured", n)
	}
	return nil
}

func connectionPath(key string) string {
	return fmt.Sprintf("%s[0].%s", config.KeyConnection, key)
}
