package descriptor

import "fmt"

// Validate assigns field indices in declaration order and rejects fields
// whose directives cannot be combined. The first violation is returned as a
// *ConfigError; generators only ever see records that passed.
func Validate(rec *Record) error {
	for i := range rec.Fields {
		rec.Fields[i].Index = i
	}

	columns := make(map[string]string, len(rec.Fields))

	for i := range rec.Fields {
		f := &rec.Fields[i]

		if f.From != nil && f.TryFrom != nil {
			return &ConfigError{Record: rec.Name, Field: f.Name, Message: "can't combine `from` with `try_from`"}
		}

		if f.Flatten && f.Rename != nil {
			return &ConfigError{Record: rec.Name, Field: f.Name, Message: "can't combine `flatten` with `rename`"}
		}

		if f.Flatten {
			// projection embeds the declared value; adapters only run forward
			if via, ok := f.Conversion(); ok {
				directive := "from"
				if via == f.TryFrom {
					directive = "try_from"
				}

				return &ConfigError{Record: rec.Name, Field: f.Name, Message: "can't combine `flatten` with `" + directive + "`"}
			}

			continue
		}

		if other, taken := columns[f.ColumnName()]; taken {
			return DuplicateColumn(rec.Name, f.Name, f.ColumnName(), other)
		}

		columns[f.ColumnName()] = f.Name
	}

	return nil
}

// DuplicateColumn reports two fields resolving to the same column.
func DuplicateColumn(record, field, column, other string) *ConfigError {
	return &ConfigError{
		Record:  record,
		Field:   field,
		Message: fmt.Sprintf("column %q is already used by field %s", column, other),
	}
}
