package notify

import (
	"fmt"
	"strings"

	"github.com/mcoot/turnherald/internal/dependencies/random"
	"github.com/mcoot/turnherald/internal/model"
)

// Lines rotated into reminder messages for players sitting on their turn
var reminderLines = []string{
	"Hey, remember that Civ game you're in? It remembers you. It's been waiting. Patiently. Unlike me.",
	"Just checking if you're still alive, because your turn certainly isn't progressing.",
	"Fun fact: entire civilizations have risen and fallen in the time you've been 'thinking' about your turn.",
	"I'm not saying you're slow, but I've seen glaciers move faster. Take your turn.",
	"Your opponents have started a betting pool on whether you'll ever finish your turn. The odds aren't great.",
	"Legend has it, if you wait long enough, the turn will play itself. Spoiler: it won't. Take your turn.",
	"I've sent this reminder before. I'll send it again. I have nothing but time. You, apparently, have nothing but excuses.",
	"The other players wanted me to tell you to hurry up. I wanted to tell you that too, but more sarcastically.",
	"Your Civ is starting to think you've abandoned them. Don't make me send a wellness check.",
	"Breaking news: Local player discovers 'taking your turn' is actually an option. More at 11.",
	"Did you know your turn has been pending longer than some people's entire relationships? Take. Your. Turn.",
	"I'm starting to think you're not playing hard to get, you're just not playing at all.",
	"The game isn't going to play itself. Well, technically it could if you enabled AI, but that's not the point.",
	"Tick tock. That's not a clock, that's the sound of everyone's patience running out.",
	"Your turn has been waiting so long it's started collecting dust. Digital dust. That's how long.",
}

// Lines appended when the current player has no configured mapping
var admonishments = []string{
	"Whoever you are, change your Steam name back. We're not playing guess who here.",
	"Someone changed their Steam name and now I look like an idiot. Thanks for that.",
	"I don't know who you are, but I will find you, and I will ping you. Change your name back.",
	"Congratulations on your new identity. Now change it back so I can do my job.",
	"This is why we can't have nice things. Change your Steam name back.",
	"I'm a simple bot with simple needs. Please don't make my life harder than it needs to be.",
	"Your new Steam name is very cool. I'm sure it was worth confusing everyone. Change it back.",
	"I'm not mad, I'm just disappointed. And also mad. Change your name back.",
	"Did you think I wouldn't notice? I notice everything. Except your new name, apparently.",
	"Plot twist: someone changed their Steam name. Change it back or face mild inconvenience.",
}

// Formatter renders notifications into chat message content
type Formatter struct {
	random random.Random
}

// NewFormatter creates a formatter using the given randomness source for
// line rotation
func NewFormatter(rnd random.Random) *Formatter {
	return &Formatter{random: rnd}
}

// Format renders a notification as Discord message content
func (f *Formatter) Format(n model.Notification) string {
	if n.IsReminder {
		return f.formatReminder(n)
	}
	return f.formatNotice(n)
}

func (f *Formatter) formatNotice(n model.Notification) string {
	flavor := flavorSuffix(n)

	if n.Player.IsMention() {
		return fmt.Sprintf("<@%s> - Your turn in %q (Round %d)%s",
			n.Player.ChatID, n.GameDisplayName, n.RoundNumber, flavor)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "@everyone - It's %q's turn in %q (Round %d)%s",
		n.Player.DisplayName, n.GameDisplayName, n.RoundNumber, flavor)
	if line := random.Pick(f.random, admonishments); line != "" {
		b.WriteString("\n\n")
		b.WriteString(line)
	}
	return b.String()
}

func (f *Formatter) formatReminder(n model.Notification) string {
	var b strings.Builder
	if n.Player.IsMention() {
		fmt.Fprintf(&b, "⏰ <@%s> - Reminder #%d: Your turn in %q (Round %d) has been waiting for %.1f hours.",
			n.Player.ChatID, n.ReminderCount, n.GameDisplayName, n.RoundNumber, n.WaitingHours)
	} else {
		fmt.Fprintf(&b, "⏰ @everyone - Reminder #%d: **%s**'s turn in %q (Round %d) has been waiting for %.1f hours.",
			n.ReminderCount, n.Player.DisplayName, n.GameDisplayName, n.RoundNumber, n.WaitingHours)
	}
	if line := random.Pick(f.random, reminderLines); line != "" {
		b.WriteString("\n\n")
		b.WriteString(line)
	}
	return b.String()
}

// flavorSuffix renders the optional civ/leader fields of an initial notice
func flavorSuffix(n model.Notification) string {
	if n.LeaderName == "" && n.CivName == "" {
		return ""
	}
	if n.LeaderName != "" && n.CivName != "" {
		return fmt.Sprintf(" as %s of %s", n.LeaderName, n.CivName)
	}
	if n.LeaderName != "" {
		return fmt.Sprintf(" as %s", n.LeaderName)
	}
	return fmt.Sprintf(" as %s", n.CivName)
}
