// Package fuzztests houses Go fuzz harnesses that exercise the lyread
// pipeline (source -> lexer -> reader -> document). Its goal is to smoke test
// robustness and check token and item invariants on arbitrary inputs.
//
// Назначение: загружать байты в FileSet, прогонять их через лексер, reader и
// сборку документа и проверять инварианты из internal/testkit.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/reader,
// internal/document, internal/diag, internal/testkit.

package fuzztests
