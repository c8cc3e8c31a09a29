package facts

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"rag-pipeline/internal/domain"
	"rag-pipeline/internal/usecase/dates"
)

const estKeySuffix = " 00:00:00 EST"

var tradingDayPattern = regexp.MustCompile(`\bday\b`)

// sentinelPrice marks placeholder rows in the price history. A window that
// contains one is dropped entirely rather than averaged.
const sentinelPrice = 0.01

// FormatFinance renders the stock report for every matched ticker: basis
// info, dividends when asked, and price information for the date window the
// query describes.
func (f *Formatter) FormatFinance(ctx context.Context, qc domain.QueryContext, matched domain.MatchedEntities) string {
	query := strings.ReplaceAll(strings.ToLower(qc.Query), "the last day", "yesterday")
	symbols := matched.Symbols
	if len(symbols) == 0 {
		symbols = f.matcher.TickerNamesInQuery(ctx, query)
	}
	if len(symbols) == 0 {
		return ""
	}
	queryDate := dates.QueryDate(qc.QueryTime)

	var info, notes strings.Builder

	for _, symbol := range symbols {
		info.WriteString(f.basisReport(ctx, symbol))
	}

	var dividendDates []string
	if strings.Contains(query, "dividend") {
		dividendDates = f.dividendReport(ctx, query, queryDate, symbols, &info, &notes)
	}

	switch {
	case strings.Contains(query, "week"):
		f.weekWindowReport(ctx, query, qc.QueryTime, queryDate, symbols, &info)
	case strings.Contains(query, "month"):
		f.monthWindowReport(ctx, query, qc.QueryTime, symbols, &info)
	case strings.Contains(query, "year"):
		f.yearWindowReport(ctx, query, queryDate, symbols, &info)
	default:
		f.dateReport(ctx, query, qc.QueryTime, queryDate, symbols, dividendDates, &info, &notes)
	}

	if info.Len() > 0 && notes.Len() > 0 {
		info.WriteString("Note:\n")
		info.WriteString(notes.String())
	}
	return info.String()
}

// price returns the OHLCV row for one date, nil when the date is not a
// trading day or the history is unavailable.
func (f *Formatter) price(ctx context.Context, symbol, date string) *domain.DayPrice {
	history, err := f.finance.PriceHistory(ctx, symbol)
	if err != nil {
		f.warn("price_history_lookup_failed", err, "symbol", symbol)
		return nil
	}
	if row, ok := history[date+estKeySuffix]; ok {
		return &row
	}
	return nil
}

func (f *Formatter) basisReport(ctx context.Context, symbol string) string {
	var b strings.Builder
	companyName := f.matcher.Companies().NameBySymbol(symbol)
	fmt.Fprintf(&b, "#### Some information of %s (%s)\n", companyName, symbol)

	if marketCap, err := f.finance.MarketCapitalization(ctx, symbol); err != nil {
		f.warn("market_cap_lookup_failed", err, "symbol", symbol)
	} else if marketCap != nil {
		fmt.Fprintf(&b, "- Market Capitalization: %s\n", money(*marketCap))
	}
	if eps, err := f.finance.EPS(ctx, symbol); err != nil {
		f.warn("eps_lookup_failed", err, "symbol", symbol)
	} else if eps != nil {
		fmt.Fprintf(&b, "- Earnings Per Share: %s\n", commaFloat(*eps))
	}
	if pe, err := f.finance.PERatio(ctx, symbol); err != nil {
		f.warn("pe_ratio_lookup_failed", err, "symbol", symbol)
	} else if pe != nil {
		fmt.Fprintf(&b, "- Price/Earnings Ratio: %s\n", commaFloat(*pe))
	}
	if other, err := f.finance.Info(ctx, symbol); err != nil {
		f.warn("info_lookup_failed", err, "symbol", symbol)
	} else if other != nil {
		b.WriteString("- Other Information\n")
		for _, key := range []string{"dividendYield", "totalRevenue"} {
			if v, ok := other[key]; ok {
				fmt.Fprintf(&b, "    - %s: %v\n", key, v)
			}
		}
	}
	b.WriteString("\n")
	return b.String()
}

// dividendReport renders dividend history, a yearly breakdown when the query
// names years, and the per-year distribution count when the two most recent
// complete years agree. It returns the first/last distribution dates so the
// date report can include their prices.
func (f *Formatter) dividendReport(ctx context.Context, query, queryDate string, symbols []string, info, notes *strings.Builder) []string {
	var dividendDates []string

	if strings.Contains(query, "year") || dates.Years(query) != nil {
		years := dates.Years(query)
		if strings.Contains(query, "last") || strings.Contains(query, "previous") ||
			strings.Contains(query, "past") || strings.Contains(query, "recent") {
			if y, err := strconv.Atoi(queryDate[:4]); err == nil {
				years = append(years, strconv.Itoa(y-1))
			}
		} else if len(years) == 0 {
			years = []string{queryDate[:4]}
		}
		years = dedupeStrings(years)

		for _, symbol := range symbols {
			companyName := f.matcher.Companies().NameBySymbol(symbol)
			history, err := f.finance.DividendHistory(ctx, symbol)
			if err != nil {
				f.warn("dividend_lookup_failed", err, "symbol", symbol)
				continue
			}
			fmt.Fprintf(info, "#### Some Information of %s (%s)'s Dividends\n", companyName, symbol)
			fmt.Fprintf(info, "- Dividends in %s\n", strings.Join(years, ", "))
			for _, year := range years {
				byYear := filterDividendsByYear(history, year)
				if len(byYear) > 0 {
					keys := sortedKeys(byYear)
					fmt.Fprintf(info, "    - %s\n", year)
					var total float64
					for _, k := range keys {
						total += byYear[k]
						fmt.Fprintf(info, "        - %s: %s\n", k[:10], money(byYear[k]))
					}
					fmt.Fprintf(info, "    - Total Dividends Distributed in %s: %s\n", year, money(total))
				} else {
					fmt.Fprintf(info, "    - %s: No Dividends Distributed\n", year)
					fmt.Fprintf(notes, "- If ask for the days dividends distributed in %s, reply `None of the Days`\n", year)
				}
			}
			recent := filterDividendsByYear(history, "2023")
			previous := filterDividendsByYear(history, "2022")
			if len(recent) > 0 && len(previous) > 0 && len(recent) == len(previous) {
				fmt.Fprintf(info, "- Dividends Distributed Times Per Year: %d\n", len(recent))
			}
			info.WriteString("\n")
		}
		return nil
	}

	for _, symbol := range symbols {
		companyName := f.matcher.Companies().NameBySymbol(symbol)
		history, err := f.finance.DividendHistory(ctx, symbol)
		if err != nil {
			f.warn("dividend_lookup_failed", err, "symbol", symbol)
			continue
		}
		if len(history) > 0 {
			keys := sortedKeys(history)
			first, last := keys[0], keys[len(keys)-1]
			fmt.Fprintf(info, "#### Some Information of %s (%s)'s Dividends\n", companyName, symbol)
			info.WriteString("- First Dividend Distributed\n")
			fmt.Fprintf(info, "    - %s: %s\n", first[:10], money(history[first]))
			info.WriteString("- Last Dividend Distributed\n")
			fmt.Fprintf(info, "    - %s: %s\n", last[:10], money(history[last]))
			var total float64
			for _, v := range history {
				total += v
			}
			fmt.Fprintf(info, "- Total Dividends Distributed: %s\n", money(total))
			info.WriteString("\n")
			dividendDates = append(dividendDates, last[:10], first[:10])
		} else {
			fmt.Fprintf(info, "#### Some Information of %s (%s)'s Dividends\n", companyName, symbol)
			info.WriteString("- No Dividends Distributed\n")
			notes.WriteString("- If ask for the days dividends distributed, reply `None of the Days`\n")
			info.WriteString("\n")
		}
	}
	return dividendDates
}

// dayReport renders one trading day's OHLCV block, empty when the date has
// no data.
func (f *Formatter) dayReport(ctx context.Context, symbol, date string) string {
	row := f.price(ctx, symbol, date)
	if row == nil {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "- Stock Price of %s(%s)\n", date, dates.WeekdayName(date))
	fmt.Fprintf(&b, "    - Open: %s\n", money(row.Open))
	fmt.Fprintf(&b, "    - Close: %s\n", money(row.Close))
	fmt.Fprintf(&b, "    - High: %s\n", money(row.High))
	fmt.Fprintf(&b, "    - Low: %s\n", money(row.Low))
	fmt.Fprintf(&b, "    - Volume: %s\n", commaInt(row.Volume))
	return b.String()
}

// windowReport aggregates a list of dates into window open/close/high/low and
// daily averages. Windows touching a sentinel price row render nothing.
func (f *Formatter) windowReport(ctx context.Context, symbol string, window []string, dateStr, query string) string {
	var rows []domain.DayPrice
	for _, date := range window {
		if row := f.price(ctx, symbol, date); row != nil {
			rows = append(rows, *row)
		}
	}
	if len(rows) == 0 {
		return ""
	}
	for _, row := range rows {
		if row.Open == sentinelPrice || row.Close == sentinelPrice ||
			row.High == sentinelPrice || row.Low == sentinelPrice {
			return ""
		}
	}

	var sumOpen, sumClose, sumHigh, sumLow, sumVolume float64
	highest, lowest := round2(rows[0].High), round2(rows[0].Low)
	var totalVolume int64
	for _, row := range rows {
		sumOpen += round2(row.Open)
		sumClose += round2(row.Close)
		sumHigh += round2(row.High)
		sumLow += round2(row.Low)
		sumVolume += float64(row.Volume)
		totalVolume += row.Volume
		if h := round2(row.High); h > highest {
			highest = h
		}
		if l := round2(row.Low); l < lowest {
			lowest = l
		}
	}
	n := float64(len(rows))
	overallRise := round2(rows[len(rows)-1].Close) - round2(rows[0].Open)
	companyName := f.matcher.Companies().NameBySymbol(symbol)

	var b strings.Builder
	if !containsAny(query, "average", "basis", "mean", "total", "daily") {
		fmt.Fprintf(&b, "#### Some Information of %s (%s)'s Stock Price %s\n", companyName, symbol, dateStr)
		fmt.Fprintf(&b, "- Open: %s\n", money(round2(rows[0].Open)))
		fmt.Fprintf(&b, "- Close: %s\n", money(round2(rows[len(rows)-1].Close)))
		fmt.Fprintf(&b, "- High: %s\n", money(highest))
		fmt.Fprintf(&b, "- Low: %s\n", money(lowest))
		fmt.Fprintf(&b, "- Overall Rise: %s\n", money(overallRise))
		fmt.Fprintf(&b, "- Volume: %s\n", commaInt(totalVolume))
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "#### Some Information of %s (%s)'s Average Stock Price %s (On a daily basis)\n", companyName, symbol, dateStr)
	fmt.Fprintf(&b, "- Average Open %s: %s\n", dateStr, money(sumOpen/n))
	fmt.Fprintf(&b, "- Average Close %s: %s\n", dateStr, money(sumClose/n))
	fmt.Fprintf(&b, "- Average High %s: %s\n", dateStr, money(sumHigh/n))
	fmt.Fprintf(&b, "- Average Low %s: %s\n", dateStr, money(sumLow/n))
	fmt.Fprintf(&b, "- Average Volume %s: %s\n", dateStr, commaFloat(sumVolume/n))
	b.WriteString("\n")
	return b.String()
}

// comparisonReport counts, within the window, the days that opened above or
// below the previous trading day's close and the days that closed above or
// below their own open.
func (f *Formatter) comparisonReport(ctx context.Context, symbol string, window []string, dateStr string) string {
	history, err := f.finance.PriceHistory(ctx, symbol)
	if err != nil {
		f.warn("price_history_lookup_failed", err, "symbol", symbol)
		return ""
	}
	if history == nil {
		return ""
	}
	tradingDays := sortedKeysDesc(history)

	var inWindow []string
	for _, date := range window {
		if _, ok := history[date+estKeySuffix]; ok {
			inWindow = append(inWindow, date)
		}
	}
	if len(inWindow) == 0 {
		return ""
	}
	sort.Strings(inWindow)

	lastDate := ""
	for _, day := range tradingDays {
		if day[:10] < inWindow[0] {
			lastDate = day[:10]
			break
		}
	}
	if lastDate == "" {
		return ""
	}

	var openHigher, openLower, closeHigher, closeLower []string
	for _, date := range inWindow {
		row := f.price(ctx, symbol, date)
		lastRow := f.price(ctx, symbol, lastDate)
		if row != nil && lastRow != nil {
			switch {
			case round2(row.Open) > round2(lastRow.Close):
				openHigher = append(openHigher, date)
			case round2(row.Open) < round2(lastRow.Close):
				openLower = append(openLower, date)
			}
			switch {
			case round2(row.Close) > round2(row.Open):
				closeHigher = append(closeHigher, date)
			case round2(row.Close) < round2(row.Open):
				closeLower = append(closeLower, date)
			}
			lastDate = date
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "#### Some Other Information of %s's Stock Price %s\n", symbol, dateStr)
	b.WriteString("- Open Price Higher Than Last Close Price:\n")
	fmt.Fprintf(&b, "    - %d Days: %s\n", len(openHigher), strings.Join(openHigher, ", "))
	b.WriteString("- Open Price Lower Than Last Close Price:\n")
	fmt.Fprintf(&b, "    - %d Days: %s\n", len(openLower), strings.Join(openLower, ", "))
	b.WriteString("- Close Price Higher Than Open Price:\n")
	fmt.Fprintf(&b, "    - %d Days: %s\n", len(closeHigher), strings.Join(closeHigher, ", "))
	b.WriteString("- Close Price Lower Than Open Price:\n")
	fmt.Fprintf(&b, "    - %d Days: %s\n", len(closeLower), strings.Join(closeLower, ", "))
	b.WriteString("\n")
	return b.String()
}

// weekWindowReport handles "week" queries: a named month's first week, last
// week, or the current week truncated to days before the reference date.
func (f *Formatter) weekWindowReport(ctx context.Context, query, queryTime, queryDate string, symbols []string, info *strings.Builder) {
	if month, monthName, ok := dates.MonthInQuery(query); ok {
		if !strings.Contains(query, "first week") {
			return
		}
		years := dates.Years(query)
		year := queryDate[:4]
		if strings.Contains(query, "last year") {
			if y, err := strconv.Atoi(queryDate[:4]); err == nil {
				year = strconv.Itoa(y - 1)
			}
		} else if len(years) > 0 {
			year = years[0]
		}
		var window []string
		for day := 1; day <= 7; day++ {
			window = append(window, fmt.Sprintf("%s-%02d-%02d", year, month, day))
		}
		dateStr := fmt.Sprintf("First Week of %s %s", monthName, year)
		itemizedStr := fmt.Sprintf("First Week of %d %s", month, year)
		f.emitWindow(ctx, query, symbols, window, dateStr, itemizedStr, info)
		return
	}

	if containsAny(query, "last", "previous", "past", "recent") {
		window := dates.LastWeekDates(queryTime)
		f.emitWindow(ctx, query, symbols, window, "Last Week", "Last Week", info)
		return
	}

	window := dates.ThisWeekDates(queryTime)
	var truncated []string
	for _, date := range window {
		if date < queryDate {
			truncated = append(truncated, date)
		}
	}
	f.emitWindow(ctx, query, symbols, truncated, "This Week", "This Week", info)
}

// emitWindow writes the per-day itemization (unless an aggregate keyword
// suppresses it), the window aggregate, and comparisons when asked.
func (f *Formatter) emitWindow(ctx context.Context, query string, symbols, window []string, dateStr, itemizedStr string, info *strings.Builder) {
	for _, symbol := range symbols {
		report := f.windowReport(ctx, symbol, window, dateStr, query)
		if report == "" {
			continue
		}
		if !containsAny(query, "average", "basis", "mean", "total", "daily", "higher", "lower") {
			companyName := f.matcher.Companies().NameBySymbol(symbol)
			fmt.Fprintf(info, "#### Some Information of %s (%s)'s Stock Price %s\n", companyName, symbol, itemizedStr)
			for _, date := range window {
				info.WriteString(f.dayReport(ctx, symbol, date))
			}
			info.WriteString("\n")
		}
		info.WriteString(report)
		if strings.Contains(query, "higher") || strings.Contains(query, "lower") {
			info.WriteString(f.comparisonReport(ctx, symbol, window, dateStr))
		}
		info.WriteString("\n")
	}
}

func (f *Formatter) monthWindowReport(ctx context.Context, query, queryTime string, symbols []string, info *strings.Builder) {
	var window []string
	dateStr := "This Month"
	if containsAny(query, "last", "previous", "past", "recent") {
		window = dates.LastMonthDates(queryTime)
		dateStr = "Last Month"
	} else {
		window = dates.ThisMonthDates(queryTime)
	}
	for _, symbol := range symbols {
		report := f.windowReport(ctx, symbol, window, dateStr, query)
		if report == "" {
			continue
		}
		info.WriteString(report)
		if strings.Contains(query, "higher") || strings.Contains(query, "lower") {
			info.WriteString(f.comparisonReport(ctx, symbol, window, dateStr))
		}
		info.WriteString("\n")
	}
}

// yearWindowReport compares the first trading day of the current year with
// the reference date. Past-year questions have no window to report.
func (f *Formatter) yearWindowReport(ctx context.Context, query, queryDate string, symbols []string, info *strings.Builder) {
	if containsAny(query, "last", "previous", "past", "recent") {
		return
	}
	for _, symbol := range symbols {
		companyName := f.matcher.Companies().NameBySymbol(symbol)
		var firstRow *domain.DayPrice
		date := queryDate[:4] + "-01-01"
		for date < queryDate && firstRow == nil {
			firstRow = f.price(ctx, symbol, date)
			date = nextDay(date)
		}
		todayRow := f.price(ctx, symbol, queryDate)
		if firstRow == nil || todayRow == nil {
			continue
		}
		fmt.Fprintf(info, "#### Some Information of %s (%s)'s Stock Price This Year(Until Now)\n", companyName, symbol)
		info.WriteString("- Stock Price First Trading Day This Year\n")
		fmt.Fprintf(info, "    - Open: %s\n", money(firstRow.Open))
		fmt.Fprintf(info, "    - Close: %s\n", money(firstRow.Close))
		fmt.Fprintf(info, "    - High: %s\n", money(firstRow.High))
		fmt.Fprintf(info, "    - Low: %s\n", money(firstRow.Low))
		fmt.Fprintf(info, "    - Volume: %s\n", commaInt(firstRow.Volume))
		info.WriteString("- Stock Price Today\n")
		fmt.Fprintf(info, "    - Open: %s\n", money(todayRow.Open))
		fmt.Fprintf(info, "    - Close: %s\n", money(todayRow.Close))
		fmt.Fprintf(info, "    - High: %s\n", money(todayRow.High))
		fmt.Fprintf(info, "    - Low: %s\n", money(todayRow.Low))
		fmt.Fprintf(info, "    - Volume: %s\n", commaInt(todayRow.Volume))
		fmt.Fprintf(info, "Overall Rise: %s\n", money(todayRow.Close-firstRow.Open))
		info.WriteString("\n")
	}
}

// dateReport handles queries about specific days: relative expressions,
// written dates, trading-day lookups, and the current day's intraday prices.
func (f *Formatter) dateReport(ctx context.Context, query, queryTime, queryDate string, symbols, dividendDates []string, info, notes *strings.Builder) {
	resolved, descriptors := dates.ResolveAll(queryTime, query)
	if len(resolved) == 0 {
		if date := dates.ExtractWrittenDate(query); date != "" {
			resolved = []string{date}
		} else {
			resolved = []string{queryDate}
		}
	}
	for i, desc := range descriptors {
		if desc != "today" && desc != "yesterday" {
			fmt.Fprintf(notes, "- %s of %s is %s\n", desc, queryDate, resolved[i])
		}
	}

	if (strings.Contains(query, "trading") && tradingDayPattern.MatchString(query)) || strings.Contains(query, "last trading") {
		if replacement := f.tradingDayDates(ctx, query, queryDate, symbols[0], notes); replacement != nil {
			resolved = replacement
		}
	}
	resolved = append(resolved, dividendDates...)

	for _, symbol := range symbols {
		companyName := f.matcher.Companies().NameBySymbol(symbol)
		var perDay strings.Builder
		todayAsked := false
		for _, date := range resolved {
			if date == queryDate {
				todayAsked = true
				continue
			}
			perDay.WriteString(f.dayReport(ctx, symbol, date))
		}
		if todayAsked {
			if containsAny(query, "close", "high", "low") {
				perDay.WriteString(f.dayReport(ctx, symbol, queryDate))
			} else {
				info.WriteString(f.intradayReport(ctx, companyName, symbol, queryTime, queryDate))
			}
		}
		if perDay.Len() > 0 {
			fmt.Fprintf(info, "#### Some Information of %s (%s)'s Stock Price\n", companyName, symbol)
			info.WriteString(perDay.String())
			info.WriteString("\n")
		}
		info.WriteString("\n")
	}
}

// tradingDayDates resolves "first trading day of <month>" and "last trading
// day" questions against the first symbol's trading calendar.
func (f *Formatter) tradingDayDates(ctx context.Context, query, queryDate, symbol string, notes *strings.Builder) []string {
	history, err := f.finance.PriceHistory(ctx, symbol)
	if err != nil {
		f.warn("price_history_lookup_failed", err, "symbol", symbol)
		return nil
	}
	if history == nil {
		return nil
	}

	if strings.Contains(query, "first trading day of") {
		month, monthName, ok := dates.MonthInQuery(query)
		if !ok {
			return nil
		}
		year := queryDate[:4]
		if years := dates.Years(query); len(years) > 0 {
			year = years[0]
		}
		target := fmt.Sprintf("%s-%02d-01", year, month)
		date := target
		for _, day := range sortedKeys(history) {
			if day[:10] >= target {
				date = day[:10]
				break
			}
		}
		fmt.Fprintf(notes, "- First Trading Day of %s %s is %s\n", monthName, year, date)
		return []string{date}
	}

	for _, day := range sortedKeysDesc(history) {
		if day[:10] < queryDate {
			date := day[:10]
			fmt.Fprintf(notes, "- Last Trading Day of %s is %s\n", queryDate, date)
			return []string{date}
		}
	}
	return nil
}

// intradayReport reads the minute-level history for the reference day. The
// reference timestamp is Pacific while the feed is Eastern; a fixed 3 hour
// offset converts it before finding the latest quote.
func (f *Formatter) intradayReport(ctx context.Context, companyName, symbol, queryTime, queryDate string) string {
	details, err := f.finance.DetailedPriceHistory(ctx, symbol)
	if err != nil {
		f.warn("detailed_price_lookup_failed", err, "symbol", symbol)
		return ""
	}
	var todayKeys []string
	for key := range details {
		if key[:10] == queryDate {
			todayKeys = append(todayKeys, key)
		}
	}
	if len(todayKeys) == 0 {
		return ""
	}
	sort.Sort(sort.Reverse(sort.StringSlice(todayKeys)))
	earliest := todayKeys[len(todayKeys)-1]
	openPrice := details[earliest].Open

	parsed, err := dates.ParseQueryTime(queryTime)
	if err != nil {
		return ""
	}
	currentTime := parsed.Add(3 * time.Hour).Format("2006-01-02 15:04:05") + " EST"

	latestKey := ""
	for _, key := range todayKeys {
		if key < currentTime {
			latestKey = key
			break
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "#### Some Information of %s (%s)'s Stock Price Today\n", companyName, symbol)
	if latestKey == "" || latestKey == earliest {
		b.WriteString("- Market is still close, no information today\n")
	} else {
		fmt.Fprintf(&b, "- Open Price(%s): %s\n", earliest, money(openPrice))
		fmt.Fprintf(&b, "- Latest Price(%s): %s\n", latestKey, money(details[latestKey].Close))
	}
	b.WriteString("\n")
	return b.String()
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func dedupeStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	var out []string
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func filterDividendsByYear(history map[string]float64, year string) map[string]float64 {
	out := make(map[string]float64)
	for date, v := range history {
		if strings.HasPrefix(date, year) {
			out[date] = v
		}
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedKeysDesc[V any](m map[string]V) []string {
	keys := sortedKeys(m)
	for i, j := 0, len(keys)-1; i < j; i, j = i+1, j-1 {
		keys[i], keys[j] = keys[j], keys[i]
	}
	return keys
}

func nextDay(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.AddDate(0, 0, 1).Format("2006-01-02")
}
