// Package tables раскрывает шаблоны имен шардированных таблиц.
package tables

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// order_[0-3] -> order_0..order_3, order_[00-03]_bak -> order_00_bak..order_03_bak,
// shop.order_[0-1] -> shop.order_0, shop.order_1
var rangePattern = regexp.MustCompile(`^(\w+\.)?(\w+)\[(\d+)-(\d+)\](.*)$`)

// Expand раскрывает список таблиц. Элемент может содержать несколько имен через запятую
func Expand(tables []string) []string {
	var result []string
	for _, table := range tables {
		result = append(result, Split(table)...)
	}
	return result
}

// Split раскрывает одну строку конфига
func Split(tables string) []string {
	var result []string
	for _, item := range strings.Split(tables, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}

		m := rangePattern.FindStringSubmatch(item)
		if m == nil {
			result = append(result, item)
			continue
		}

		prefix, start, end, suffix := m[1]+m[2], m[3], m[4], strings.TrimSpace(m[5])
		lo, errLo := strconv.Atoi(start)
		hi, errHi := strconv.Atoi(end)
		if errLo != nil || errHi != nil {
			// слишком длинные числа оставляем как есть
			result = append(result, item)
			continue
		}
		if lo > hi {
			lo, hi = hi, lo
			start = end
		}

		format := "%s%d%s"
		if strings.HasPrefix(start, "0") {
			format = "%s%0" + strconv.Itoa(len(start)) + "d%s"
		}
		for i := lo; i <= hi; i++ {
			result = append(result, fmt.Sprintf(format, prefix, i, suffix))
		}
	}
	return result
}
