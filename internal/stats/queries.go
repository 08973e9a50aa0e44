package stats

import "brunnhilde/internal/records"

const table = records.TableName

// duplicateWhere selects non-empty rows whose hash is shared with a
// differently named non-empty row.
const duplicateWhere = `t1.filesize <> '0' AND EXISTS (
	SELECT 1 FROM ` + table + ` t2
	WHERE t2.md5 = t1.md5 AND t2.filename <> t1.filename AND t2.filesize <> '0'
)`

const (
	qTotalFiles       = `SELECT COUNT(*) FROM ` + table
	qDistinctFiles    = `SELECT COUNT(DISTINCT md5) FROM ` + table + ` WHERE filesize <> '0'`
	qEmptyFiles       = `SELECT COUNT(*) FROM ` + table + ` WHERE filesize = '0'`
	qAllDuplicates    = `SELECT COUNT(*) FROM ` + table + ` t1 WHERE ` + duplicateWhere
	qDistinctDupes    = `SELECT COUNT(DISTINCT t1.md5) FROM ` + table + ` t1 WHERE ` + duplicateWhere
	qUnidentified     = `SELECT COUNT(*) FROM ` + table + ` WHERE id = '` + records.UnknownID + `'`
	qFormatCount      = `SELECT COUNT(DISTINCT format) FROM ` + table + ` WHERE format <> ''`
	qErrorCount       = `SELECT COUNT(*) FROM ` + table + ` WHERE errors <> ''`
	qWarningCount     = `SELECT COUNT(*) FROM ` + table + ` WHERE warning <> ''`
	qDistinctYears    = `SELECT DISTINCT SUBSTR(modified, 1, 4) FROM ` + table + ` WHERE modified <> ''`
	qDistinctModified = `SELECT DISTINCT modified FROM ` + table + ` WHERE modified <> ''`
)

const (
	qFormats = `SELECT format, id, COUNT(*) AS num FROM ` + table + `
		WHERE format <> '' GROUP BY format, id ORDER BY num DESC, format, id`
	qFormatVersions = `SELECT format, id, version, COUNT(*) AS num FROM ` + table + `
		WHERE format <> '' GROUP BY format, id, version ORDER BY num DESC, format, id, version`
	qMIMETypes = `SELECT mime, COUNT(*) AS num FROM ` + table + `
		WHERE mime <> '' GROUP BY mime ORDER BY num DESC, mime`
	qYears = `SELECT SUBSTR(modified, 1, 4) AS year, COUNT(*) AS num FROM ` + table + `
		GROUP BY year ORDER BY num DESC, year`
)

var (
	qUnidentifiedRows = `SELECT ` + records.SelectColumns + ` FROM ` + table + `
		WHERE id = '` + records.UnknownID + `' ORDER BY rowid`
	qWarningRows = `SELECT ` + records.SelectColumns + ` FROM ` + table + `
		WHERE warning <> '' ORDER BY rowid`
	qErrorRows = `SELECT ` + records.SelectColumns + ` FROM ` + table + `
		WHERE errors <> '' ORDER BY rowid`
	qDuplicateRows = `SELECT ` + prefixed("t1", records.Columns) + ` FROM ` + table + ` t1
		WHERE ` + duplicateWhere + ` ORDER BY t1.md5, t1.filename`
)

func prefixed(alias string, cols []string) string {
	out := ""
	for i, col := range cols {
		if i > 0 {
			out += ", "
		}
		out += alias + "." + col
	}
	return out
}
