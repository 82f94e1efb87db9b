package validate

import (
	"time"

	"github.com/dlclark/regexp2"
)

const matchTimeout = 250 * time.Millisecond

// Patterns use .NET syntax; the IPv6 one needs lookaround and backreferences.
const (
	EmailPattern   = `^[A-Za-z0-9_](([_\.\-]?[a-zA-Z0-9_-]+)*)@([A-Za-z0-9]+)(([\.\-]?[a-zA-Z0-9]+)*)\.([A-Za-z]{2,})$`
	IPv4Pattern    = `\b(25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.(25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.(25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.(25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\b`
	MACPattern     = `^([0-9a-fA-F][0-9a-fA-F]:){5}([0-9a-fA-F][0-9a-fA-F])$`
	CEPPattern     = `^[0-9]{5}-[0-9]{3}$`
	PhonePattern   = `^\(\d{2}\)[0-9 \s]\d{4}-\d{4}$`
	TimePattern    = `^(?:0?[0-9]|1[0-9]|2[0-3]):[0-5][0-9]$`
	AccountPattern = `^[0-9]{2}.[0-9]{3}.[0-9]{3}-[0-9XxPp]{1}$`
	IPv6Pattern    = `^(((?=.*(::))(?!.*\3.+\3))\3?|[0-9A-F]{1,4}:)([0-9A-F]{1,4}(\3|:\b)|\2){5}(([0-9A-F]{1,4}(\3|:\b|$)|\2){2}|(((2[0-4]|1[0-9]|[1-9])?[0-9]|25[0-5])\.?\b){4})\z`
)

var (
	emailRe   = mustCompile(EmailPattern)
	ipv4Re    = mustCompile(IPv4Pattern)
	macRe     = mustCompile(MACPattern)
	cepRe     = mustCompile(CEPPattern)
	phoneRe   = mustCompile(PhonePattern)
	timeRe    = mustCompile(TimePattern)
	accountRe = mustCompile(AccountPattern)
	ipv6Re    = mustCompile(IPv6Pattern)
)

func mustCompile(pattern string) *regexp2.Regexp {
	re := regexp2.MustCompile(pattern, regexp2.None)
	re.MatchTimeout = matchTimeout
	return re
}

// matches reports whether re finds a match anywhere in s. Engine errors,
// including timeouts, count as no match.
func matches(re *regexp2.Regexp, s string) bool {
	ok, err := re.MatchString(s)
	return err == nil && ok
}

// Email reports whether s looks like an e-mail address.
func Email(s string) bool { return matches(emailRe, s) }

// IPv4 reports whether s contains a dotted IPv4 address.
func IPv4(s string) bool { return matches(ipv4Re, s) }

// MAC reports whether s is a colon separated MAC address.
func MAC(s string) bool { return matches(macRe, s) }

// CEP reports whether s is a Brazilian postal code (00000-000).
func CEP(s string) bool { return matches(cepRe, s) }

// Phone reports whether s is a phone number formatted as (00)_0000-0000.
func Phone(s string) bool { return matches(phoneRe, s) }

// Time reports whether s is a 24-hour HH:MM time.
func Time(s string) bool { return matches(timeRe, s) }

// Account reports whether s is a bank account number (00.000.000-D).
func Account(s string) bool { return matches(accountRe, s) }

// IPv6 reports whether s is an upper-case IPv6 address, optionally
// compressed or with an embedded IPv4 tail.
func IPv6(s string) bool { return matches(ipv6Re, s) }
