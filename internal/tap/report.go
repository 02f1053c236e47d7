package tap

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
)

const RatesPerRow = 10

// Reporter renders live and final statistics as text.
type Reporter struct {
	w io.Writer

	// Quiet suppresses live lines, final report is still written.
	Quiet bool
}

func NewReporter(w io.Writer) *Reporter { return &Reporter{w: w} }

func (self *Reporter) Live(l Live) {
	if self.Quiet {
		return
	}
	switch l.Direction {
	case DirKey:
		fmt.Fprintf(self.w, "key press %d, n=%d, %5.3f Hz\n", l.Code, l.Count, l.Hz)
	case DirAxisPos:
		fmt.Fprintf(self.w, "axis %d press, n=%3d, %5.3f Hz\n", l.Code, l.Count, l.Hz)
	case DirAxisNeg:
		fmt.Fprintf(self.w, "axis %d (neg) press, n=%3d, %5.3f Hz\n", l.Code, l.Count, l.Hz)
	}
}

// Final writes summary of every non-empty sequence in log.
func (self *Reporter) Final(log *PressLog) {
	keys := log.Keys()
	axisStarted := false
	for _, k := range keys {
		if k.Direction != DirKey && !axisStarted {
			axisStarted = true
			fmt.Fprintln(self.w)
		}
		s, ok := Summarize(log.Get(k.Code, k.Direction))
		if !ok {
			continue
		}
		fmt.Fprintln(self.w, Title(k))
		self.Summary(s)
	}
	if !axisStarted {
		fmt.Fprintln(self.w)
	}
}

func Title(k LogKey) string {
	switch k.Direction {
	case DirAxisNeg:
		return fmt.Sprintf("Axis %d (neg):", k.Code)
	case DirAxisPos:
		return fmt.Sprintf("Axis %d (pos):", k.Code)
	}
	return fmt.Sprintf("Key %d:", k.Code)
}

func (self *Reporter) Summary(s Summary) {
	if s.Single() {
		fmt.Fprintln(self.w, "  single press")
		return
	}
	fmt.Fprintf(self.w, "  %s presses, over %.3f seconds, avg taps/sec = %.1f\n",
		humanize.Comma(int64(s.Count)), s.Seconds(), s.AvgRate)
	fmt.Fprintln(self.w, "  detailed tap rates (as implied taps/sec):")
	fmt.Fprint(self.w, "  ")
	it := s.Rates()
	for i := 1; ; i++ {
		rate, ok := it.Next()
		if !ok {
			break
		}
		fmt.Fprintf(self.w, "%-7.1f", rate)
		if i%RatesPerRow == 0 {
			fmt.Fprint(self.w, "\n  ")
		}
	}
	fmt.Fprintln(self.w)
}
