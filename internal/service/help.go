package service

import "fmt"

// helpText is the command reference sent for "help" and for anything the
// parser could not match.
const helpText = `textbus commands:

bus times:
[stop number]
[stop number] [route] [route]…
times [stop number]

find stops:
stops [location: address, intersection, landmark]

toggle 12h/24h clock in times response:
settings clock
`

func (b *Bot) helpReply() string {
	return fmt.Sprintf("%s\n%s", helpText, b.rootURL)
}
