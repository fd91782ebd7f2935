package session

import "fmt"

const (
	commandQuiz           = "quiz"
	commandJoin           = "joinquiz"
	commandStart          = "startquiz"
	commandSetLimit       = "setlimit"
	commandQuestionStatus = "questionstatus"
	commandMyScore        = "myscore"
	commandLeaderboard    = "leaderboard"
	commandRestart        = "restartquiz"
	commandPlayers        = "players"

	slashCommandQuizDescription           = "Tampilkan cara bermain Quiz Wadidaw."
	slashCommandJoinDescription           = "Bergabung ke sesi quiz di channel ini."
	slashCommandStartDescription          = "Mulai quiz dan pilih jumlah soal."
	slashCommandSetLimitDescription       = "Tampilkan lagi pilihan jumlah soal."
	slashCommandQuestionStatusDescription = "Lihat siapa yang sudah dan belum menjawab soal ini."
	slashCommandMyScoreDescription        = "Lihat skor kamu."
	slashCommandLeaderboardDescription    = "Lihat leaderboard channel ini."
	slashCommandRestartDescription        = "Reset sesi quiz yang sedang berjalan."
	slashCommandPlayersDescription        = "Lihat pemain yang sudah bergabung."

	messageEphemeralWrongGuild      = ":warning: **Perintah ini tidak bisa dijalankan di server ini.**"
	messageEphemeralUnknownCommand  = ":warning: **Perintah tidak dikenal.**"
	messageEphemeralUnknownButton   = ":warning: **Tombol ini sudah tidak berlaku.**"
	messageEphemeralAlreadyStarted  = "❗ Quiz sudah dimulai. Kamu tidak bisa bergabung sekarang."
	messageEphemeralAlreadyRunning  = "❗ Quiz sudah berjalan."
	messageEphemeralAlreadyJoined   = "❗ Kamu sudah bergabung ke sesi ini."
	messageEphemeralNoParticipants  = "❗ Tidak ada peserta yang bergabung."
	messageEphemeralNoSession       = "❗ Sesi quiz belum dimulai."
	messageEphemeralNotStarted      = "❗ Quiz belum dimulai."
	messageEphemeralNotSelecting    = "❗ Jalankan /startquiz dulu untuk memilih jumlah soal."
	messageEphemeralInvalidLimit    = "❗ Jumlah soal tidak valid."
	messageEphemeralNotEnough       = "❗ Bank soal tidak punya cukup soal untuk jumlah itu."
	messageEphemeralLimitChosen     = "❗ Jumlah soal sudah ditetapkan."
	messageEphemeralLimitNotChosen  = "❗ Pilih jumlah soal terlebih dahulu."
	messageEphemeralNoQuestion      = "❗ Tidak ada soal yang sedang aktif."
	messageEphemeralExpiredQuestion = "❗ Soal ini sudah berakhir."
	messageEphemeralNotParticipant  = "❗ Kamu tidak terdaftar sebagai peserta quiz ini."
	messageEphemeralAlreadyAnswered = "❗ Kamu sudah menjawab soal ini."
	messageEphemeralUnknownOption   = "❗ Pilihan jawaban tidak dikenal."
	messageEphemeralSessionClosed   = "❗ Sesi quiz ini sudah selesai. Ketik /joinquiz untuk sesi baru."
	messageEphemeralAnswerRecorded  = "📝 Jawaban kamu sudah tercatat."
	messageEphemeralInternalError   = ":warning: **Terjadi kesalahan. Coba lagi nanti.**"
	messageNoPlayers                = "❗ Belum ada pemain yang bergabung."
	messageNoPersonalScore          = "❗ Kamu belum memiliki skor di grup ini."
	messageNoLeaderboard            = "❗ Belum ada skor untuk grup ini."

	messageWelcome = "🧠 Selamat datang di sesi Quiz Wadidaw!\n\nKetik /joinquiz untuk bergabung ke sesi terlebih dahulu."
	messageRestart = "🔄 Sesi quiz telah di-reset. Kamu bisa mulai quiz lagi dengan /quiz!"
	messageBegin   = "🚀 Quiz dimulai sekarang!"
	messagePicker  = "📊 Pilih jumlah soal per sesi:"
	messageHint    = "ℹ️ Ketik /myscore untuk melihat skor sementara kamu.\nℹ️ Ketik /questionstatus untuk melihat siapa aja yg sudah/belum jawab soal."

	messageJoinedFormat       = "✅ %s telah bergabung ke sesi quiz.\n\nKetik /startquiz untuk memulai sesi quiz."
	messageLimitChosenFormat  = "✅ Jumlah soal per sesi ditetapkan ke %d."
	messageSessionScoreFormat = "📊 Skor kamu saat ini di sesi ini: %d poin"
	messageOverallScoreFormat = "📊 Skor kamu di grup ini: %d poin"
	messageLimitButtonFormat  = "%d soal"
	messageBeginButton        = "🚀 Mulai Quiz Sekarang"
	messageUnknownUserFormat  = "User ID: %s"
)

func joinedMessage(name string) string {
	return fmt.Sprintf(messageJoinedFormat, name)
}

func limitChosenMessage(n int) string {
	return fmt.Sprintf(messageLimitChosenFormat, n)
}
