package handlers

import (
	"bufio"
	"compress/gzip"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"inkpost/internal/apperr"
	"inkpost/internal/utils/helpers"
)

// AdminLogsHandler lets the operator read the JSON log files written by the
// rotating logger: the live app.log and its app-<timestamp>.log[.gz] backups.
type AdminLogsHandler struct {
	LogDir string
}

func NewAdminLogsHandler(logDir string) *AdminLogsHandler {
	return &AdminLogsHandler{LogDir: logDir}
}

type logPage struct {
	Day        string            `json:"day"`
	Items      []json.RawMessage `json:"items"`
	NextCursor int               `json:"nextCursor"`
}

type logStats struct {
	Day   string                 `json:"day"`
	Hours map[int]map[string]int `json:"hours"`
}

// GetLogs
// @Summary      Log entries of a day
// @Description  Filters by level (CSV), hour and substring. Paginated by line cursor.
// @Tags         admin-logs
// @Security     ApiKeyAuth
// @Produce      json
// @Param        day     query  string true  "Day (YYYY-MM-DD)"
// @Param        level   query  string false "CSV of levels: debug,info,warn,error"
// @Param        hour    query  int    false "Hour (0-23)"
// @Param        q       query  string false "Substring"
// @Param        limit   query  int    false "Limit (default 200, max 1000)"
// @Param        cursor  query  int    false "Lines to skip"
// @Success      200 {object} logPage
// @Failure      400 {object} helpers.Response
// @Router       /api/admin/logs [get]
func (h *AdminLogsHandler) GetLogs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	day := query.Get("day")
	if !reDay.MatchString(day) {
		writeError(w, r, apperr.NewValidation("day", "must be YYYY-MM-DD"))
		return
	}

	levels := toUpperSet(query.Get("level"))
	var qre *regexp.Regexp
	if q := strings.TrimSpace(query.Get("q")); q != "" {
		qre = regexp.MustCompile("(?i)" + regexp.QuoteMeta(q))
	}
	hour := -1
	if hv, err := strconv.Atoi(query.Get("hour")); err == nil && hv >= 0 && hv <= 23 {
		hour = hv
	}
	limit := clampAtoi(query.Get("limit"), 200, 1, 1000)
	cursor := clampAtoi(query.Get("cursor"), 0, 0, 10_000_000)

	lineNo := 0
	items := make([]json.RawMessage, 0)

	err := h.forEachLine(func(raw []byte) bool {
		lineNo++
		if lineNo <= cursor {
			return true
		}
		if qre != nil && !qre.Match(raw) {
			return true
		}
		entry, ok := parseEntry(raw)
		if !ok || entry.day != day {
			return true
		}
		if len(levels) > 0 && !levels[entry.level] {
			return true
		}
		if hour >= 0 && entry.hour != hour {
			return true
		}
		items = append(items, append([]byte{}, raw...))
		return len(items) < limit
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	helpers.JSON(w, http.StatusOK, logPage{Day: day, Items: items, NextCursor: lineNo})
}

// Stats
// @Summary      Log counts per hour and level
// @Tags         admin-logs
// @Security     ApiKeyAuth
// @Produce      json
// @Param        day query string true "Day (YYYY-MM-DD)"
// @Success      200 {object} logStats
// @Failure      400 {object} helpers.Response
// @Router       /api/admin/logs/stats [get]
func (h *AdminLogsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	day := r.URL.Query().Get("day")
	if !reDay.MatchString(day) {
		writeError(w, r, apperr.NewValidation("day", "must be YYYY-MM-DD"))
		return
	}

	stats := logStats{Day: day, Hours: make(map[int]map[string]int, 24)}
	for hr := 0; hr < 24; hr++ {
		stats.Hours[hr] = map[string]int{}
	}

	err := h.forEachLine(func(raw []byte) bool {
		entry, ok := parseEntry(raw)
		if ok && entry.day == day && entry.level != "" {
			stats.Hours[entry.hour][entry.level]++
		}
		return true
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	helpers.JSON(w, http.StatusOK, stats)
}

var reDay = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// zapcore.ISO8601TimeEncoder layout
const logTimeLayout = "2006-01-02T15:04:05.000Z0700"

type logEntry struct {
	day   string
	hour  int
	level string
}

func parseEntry(raw []byte) (logEntry, bool) {
	var obj struct {
		Time  string `json:"time"`
		Level string `json:"level"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return logEntry{}, false
	}
	t, err := time.Parse(logTimeLayout, obj.Time)
	if err != nil {
		if t, err = time.Parse(time.RFC3339Nano, obj.Time); err != nil {
			return logEntry{}, false
		}
	}
	return logEntry{day: t.Format("2006-01-02"), hour: t.Hour(), level: strings.ToUpper(obj.Level)}, true
}

// logFiles returns rotated backups oldest first, then the live file.
func (h *AdminLogsHandler) logFiles() ([]string, error) {
	entries, err := os.ReadDir(h.LogDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var backups []string
	live := ""
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		switch {
		case name == "app.log":
			live = filepath.Join(h.LogDir, name)
		case strings.HasPrefix(name, "app-") && (strings.HasSuffix(name, ".log") || strings.HasSuffix(name, ".log.gz")):
			backups = append(backups, filepath.Join(h.LogDir, name))
		}
	}
	// lumberjack timestamps sort lexically
	sort.Strings(backups)
	if live != "" {
		backups = append(backups, live)
	}
	return backups, nil
}

func (h *AdminLogsHandler) forEachLine(handle func([]byte) bool) error {
	files, err := h.logFiles()
	if err != nil {
		return err
	}
	for _, path := range files {
		if !scanFile(path, handle) {
			return nil
		}
	}
	return nil
}

// scanFile reports false when handle asked to stop.
func scanFile(path string, handle func([]byte) bool) bool {
	f, err := os.Open(path)
	if err != nil {
		return true
	}
	defer f.Close()

	var reader io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return true
		}
		defer gz.Close()
		reader = gz
	}

	sc := bufio.NewScanner(reader)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		if !handle(sc.Bytes()) {
			return false
		}
	}
	return true
}

func toUpperSet(csv string) map[string]bool {
	if csv == "" {
		return nil
	}
	m := map[string]bool{}
	for _, p := range strings.Split(csv, ",") {
		if p = strings.TrimSpace(p); p != "" {
			m[strings.ToUpper(p)] = true
		}
	}
	return m
}

func clampAtoi(s string, def, lo, hi int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return max(lo, min(n, hi))
}
