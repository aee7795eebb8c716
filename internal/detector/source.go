package detector

import "strings"

const (
	unknownSourceWeight      = 15
	trustedSourceWeight      = -20
	untrustedSourceWeight    = 25
	unclassifiedSourceWeight = 10
)

// AnalyzeSource 根据可信/不可信来源列表给来源打分，两张表都按顺序首个命中即停
func (d *Detector) AnalyzeSource(source string) Contribution {
	if source == "" {
		return Contribution{Score: unknownSourceWeight, Reasons: []string{"source unknown"}}
	}

	lower := strings.ToLower(source)

	for _, trusted := range d.lex.trusted {
		if strings.Contains(lower, trusted) {
			return Contribution{Score: trustedSourceWeight, Reasons: []string{"trusted source: " + trusted}}
		}
	}

	for _, untrusted := range d.lex.untrusted {
		if strings.Contains(lower, untrusted) {
			return Contribution{Score: untrustedSourceWeight, Reasons: []string{"untrusted source: " + untrusted}}
		}
	}

	return Contribution{Score: unclassifiedSourceWeight, Reasons: []string{"source unclassified"}}
}
