package session

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/foxseedlab/quizwadidaw/internal/discord"
	"github.com/foxseedlab/quizwadidaw/internal/leaderboard"
	"github.com/foxseedlab/quizwadidaw/internal/quiz"
	"github.com/foxseedlab/quizwadidaw/internal/webhook"
)

const (
	customIDLimitPrefix  = "limit:"
	customIDBegin        = "begin"
	customIDAnswerPrefix = "answer:"

	// Discord rejects button labels longer than this.
	maxButtonLabelRunes = 80
)

// nameFunc resolves a user ID to something printable. It never fails.
type nameFunc func(userID string) string

func renderQuestion(p quiz.QuestionPosted) discord.Message {
	buttons := make([]discord.Button, 0, len(p.Options))
	for i, opt := range p.Options {
		buttons = append(buttons, discord.Button{
			Label:    truncateLabel(opt),
			CustomID: answerCustomID(p.Token, i),
			Style:    discord.ButtonPrimary,
		})
	}
	return discord.Message{
		Content: fmt.Sprintf("❓ Soal %d/%d:\n%s\n-# ⏱️ %d detik untuk menjawab.", p.Number, p.Total, p.Prompt, int(p.Duration/time.Second)),
		Buttons: buttons,
	}
}

func renderResolution(r quiz.QuestionResolved, name nameFunc) string {
	var b strings.Builder
	if r.TimedOut {
		b.WriteString("⏰ Waktu habis!\n")
	}
	b.WriteString("📢 Hasil Jawaban:\n")
	for _, res := range r.Results {
		if res.Correct {
			fmt.Fprintf(&b, "✅ %s menjawab benar! (+%d)\n", name(res.UserID), res.Points)
			continue
		}
		fmt.Fprintf(&b, "❌ %s salah.\n", name(res.UserID))
	}
	for _, userID := range r.NonResponders {
		fmt.Fprintf(&b, "⌛ %s tidak menjawab.\n", name(userID))
	}
	fmt.Fprintf(&b, "\nJawaban yang benar adalah: %s", r.CorrectAnswer)
	return b.String()
}

func renderFinal(f quiz.QuizFinished, name nameFunc) string {
	var b strings.Builder
	b.WriteString("🏁 Sesi selesai! Skor akhir:\n")
	for i, st := range f.Standings {
		fmt.Fprintf(&b, "%d. %s - %d poin\n", i+1, name(st.UserID), st.Score)
	}
	b.WriteString("\nKetik /quiz untuk memulai sesi game baru lagi!")
	return b.String()
}

func renderStatus(st quiz.Status, name nameFunc) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📋 Soal %d/%d\n", st.Number, st.Total)
	b.WriteString("✅ Pengguna yang sudah menjawab:\n")
	writeNameList(&b, st.Answered, name)
	b.WriteString("\n❌ Pengguna yang belum menjawab:\n")
	writeNameList(&b, st.Pending, name)
	return strings.TrimRight(b.String(), "\n")
}

func renderPlayers(players []quiz.Participant, name nameFunc) string {
	var b strings.Builder
	b.WriteString("👥 Pemain yang sudah bergabung:\n")
	for _, p := range players {
		fmt.Fprintf(&b, "- %s\n", name(p.UserID))
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderLeaderboard(entries []leaderboard.Entry, name nameFunc) string {
	var b strings.Builder
	b.WriteString("🏆 Leaderboard Grup Ini:\n")
	for i, e := range entries {
		fmt.Fprintf(&b, "%d. %s - %d poin\n", i+1, name(e.UserID), e.Score)
	}
	return strings.TrimRight(b.String(), "\n")
}

func writeNameList(b *strings.Builder, userIDs []string, name nameFunc) {
	if len(userIDs) == 0 {
		b.WriteString("-\n")
		return
	}
	for _, userID := range userIDs {
		fmt.Fprintf(b, "- %s\n", name(userID))
	}
}

func limitPicker(limits []int) discord.Reply {
	buttons := make([]discord.Button, 0, len(limits))
	for _, n := range limits {
		buttons = append(buttons, discord.Button{
			Label:    fmt.Sprintf(messageLimitButtonFormat, n),
			CustomID: customIDLimitPrefix + strconv.Itoa(n),
			Style:    discord.ButtonSecondary,
		})
	}
	return discord.Reply{Content: messagePicker, Buttons: buttons}
}

func beginPrompt(n int) discord.Reply {
	return discord.Reply{
		Content: limitChosenMessage(n),
		Buttons: []discord.Button{{Label: messageBeginButton, CustomID: customIDBegin, Style: discord.ButtonSuccess}},
	}
}

func answerCustomID(token string, index int) string {
	return customIDAnswerPrefix + token + ":" + strconv.Itoa(index)
}

// parseAnswerCustomID splits "answer:<token>:<index>".
func parseAnswerCustomID(customID string) (string, int, bool) {
	rest, ok := strings.CutPrefix(customID, customIDAnswerPrefix)
	if !ok {
		return "", 0, false
	}
	i := strings.LastIndex(rest, ":")
	if i <= 0 {
		return "", 0, false
	}
	idx, err := strconv.Atoi(rest[i+1:])
	if err != nil {
		return "", 0, false
	}
	return rest[:i], idx, true
}

func parseLimitCustomID(customID string) (int, bool) {
	rest, ok := strings.CutPrefix(customID, customIDLimitPrefix)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return n, true
}

func truncateLabel(s string) string {
	r := []rune(s)
	if len(r) <= maxButtonLabelRunes {
		return s
	}
	return string(r[:maxButtonLabelRunes-1]) + "…"
}

func buildResultWebhookPayload(f quiz.QuizFinished, guildID string, finishedAt time.Time, name nameFunc) webhook.ResultWebhookPayload {
	standings := make([]webhook.ResultWebhookStanding, 0, len(f.Standings))
	for i, st := range f.Standings {
		standings = append(standings, webhook.ResultWebhookStanding{
			Rank:        i + 1,
			UserID:      st.UserID,
			DisplayName: name(st.UserID),
			Score:       st.Score,
		})
	}
	return webhook.ResultWebhookPayload{
		SchemaVersion: webhook.ResultWebhookSchemaVersion,
		GroupID:       f.GroupID,
		GuildID:       guildID,
		FinishedAt:    finishedAt.UTC().Format(time.RFC3339),
		Standings:     standings,
	}
}
