package usecase

import (
	"context"
	"log"
	"strconv"
	"strings"

	"github.com/shoplens/backend/internal/domain"
)

// Compressor shrinks image bytes before they are sent to the vision API.
type Compressor func(data []byte) ([]byte, error)

// BotService drives the chat conversation: commands, language selection,
// text lookups, and the photo identification flow.
type BotService struct {
	messenger  domain.Messenger
	prefs      domain.PrefsStore
	identifier domain.Identifier
	links      *LinkBuilder
	compress   Compressor
}

// NewBotService creates a bot service. compress may be nil, in which case
// photos are sent to the identifier as downloaded.
func NewBotService(
	messenger domain.Messenger,
	prefs domain.PrefsStore,
	identifier domain.Identifier,
	links *LinkBuilder,
	compress Compressor,
) *BotService {
	return &BotService{
		messenger:  messenger,
		prefs:      prefs,
		identifier: identifier,
		links:      links,
		compress:   compress,
	}
}

// Handle dispatches one inbound update. It never panics outward: any
// unexpected failure is logged and the user gets a short localized error
// message instead.
func (s *BotService) Handle(ctx context.Context, upd domain.ChatUpdate) {
	lang := s.prefs.Language(upd.UserID)
	msgs := messagesFor(lang)

	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Bot] panic handling update chat=%d: %v", upd.ChatID, r)
			s.sendText(ctx, upd.ChatID, msgs.GenericError)
		}
	}()

	switch {
	case upd.CallbackID != "":
		s.handleCallback(ctx, upd)
	case upd.Command != "":
		s.handleCommand(ctx, upd, msgs)
	case upd.PhotoID != "":
		s.handlePhoto(ctx, upd, lang, msgs)
	case strings.TrimSpace(upd.Text) != "":
		s.handleText(ctx, upd, lang, msgs)
	}
}

func (s *BotService) handleCommand(ctx context.Context, upd domain.ChatUpdate, msgs messageSet) {
	switch upd.Command {
	case "start":
		s.sendText(ctx, upd.ChatID, msgs.Welcome)
		s.chooseLanguage(ctx, upd.ChatID, msgs)
	case "lang":
		s.chooseLanguage(ctx, upd.ChatID, msgs)
	case "help":
		s.sendText(ctx, upd.ChatID, msgs.Help)
	case "health":
		s.sendText(ctx, upd.ChatID, "OK")
	}
}

func (s *BotService) chooseLanguage(ctx context.Context, chatID int64, msgs messageSet) {
	if err := s.messenger.SendLanguageChooser(ctx, chatID, msgs.ChooseLanguage); err != nil {
		log.Printf("[Bot] send language chooser failed: %v", err)
	}
}

// handleCallback processes "lang:<code>" button presses and persists the
// chosen language.
func (s *BotService) handleCallback(ctx context.Context, upd domain.ChatUpdate) {
	data := upd.CallbackData
	if !strings.HasPrefix(data, "lang:") {
		return
	}
	chosen := normalizeLang(strings.TrimPrefix(data, "lang:"))

	if err := s.prefs.SetLanguage(upd.UserID, chosen); err != nil {
		log.Printf("[Bot] persist language user=%d: %v", upd.UserID, err)
	}

	msgs := messagesFor(chosen)
	if err := s.messenger.AnswerCallback(ctx, upd.CallbackID, ""); err != nil {
		log.Printf("[Bot] answer callback failed: %v", err)
	}
	s.sendText(ctx, upd.ChatID, msgs.LanguageSet)
}

// handleText treats the message as a product name typed by the user and
// replies with purchase buttons right away.
func (s *BotService) handleText(ctx context.Context, upd domain.ChatUpdate, lang string, msgs messageSet) {
	name := strings.TrimSpace(upd.Text)
	ident := domain.ProductIdentification{English: name}
	s.replyWithLinks(ctx, upd, lang, msgs, ident)
}

// handlePhoto downloads and compresses the photo, runs identification, and
// replies with the result or the localized not-found message.
func (s *BotService) handlePhoto(ctx context.Context, upd domain.ChatUpdate, lang string, msgs messageSet) {
	s.sendText(ctx, upd.ChatID, msgs.Scanning)

	fileURL, err := s.messenger.PhotoFileURL(ctx, upd.PhotoID)
	if err != nil {
		log.Printf("[Bot] resolve photo file chat=%d: %v", upd.ChatID, err)
		s.sendText(ctx, upd.ChatID, msgs.GenericError)
		return
	}

	data, err := s.messenger.Download(ctx, fileURL)
	if err != nil {
		log.Printf("[Bot] download photo chat=%d: %v", upd.ChatID, err)
		s.sendText(ctx, upd.ChatID, msgs.GenericError)
		return
	}

	if s.compress != nil {
		compressed, err := s.compress(data)
		if err != nil {
			// The original bytes are still worth a try.
			log.Printf("[Bot] compress photo chat=%d: %v", upd.ChatID, err)
		} else {
			data = compressed
		}
	}

	ident, err := s.identifier.Identify(ctx, domain.ImageInput{Bytes: data, RemoteURL: fileURL})
	if err != nil {
		if err != domain.ErrNotIdentified {
			log.Printf("[Bot] identify chat=%d: %v", upd.ChatID, err)
		}
		s.sendText(ctx, upd.ChatID, msgs.NotFound)
		return
	}
	if ident.IsEmpty() {
		s.sendText(ctx, upd.ChatID, msgs.NotFound)
		return
	}

	s.replyWithLinks(ctx, upd, lang, msgs, ident)
}

// replyWithLinks sends the product name plus three redirect buttons, one
// per marketplace column. Each button carries the product name in the
// language of its storefront so the search lands well.
func (s *BotService) replyWithLinks(
	ctx context.Context,
	upd domain.ChatUpdate,
	lang string,
	msgs messageSet,
	ident domain.ProductIdentification,
) {
	domains := DomainsForLanguage(lang)
	uid := strconv.FormatInt(upd.UserID, 10)

	buttons := []domain.LinkButton{
		{Label: msgs.BuyLocal, URL: s.links.RedirectLink(nameForDomain(ident, domains.Local), domains.Local, uid)},
		{Label: msgs.BuyGlobal, URL: s.links.RedirectLink(nameForDomain(ident, domains.Global), domains.Global, uid)},
		{Label: msgs.BuyOther, URL: s.links.RedirectLink(nameForDomain(ident, domains.Other), domains.Other, uid)},
	}

	text := msgs.FoundProduct + "\n" + ident.Name(lang)
	if err := s.messenger.SendLinks(ctx, upd.ChatID, text, buttons); err != nil {
		log.Printf("[Bot] send links chat=%d: %v", upd.ChatID, err)
	}
}

// nameForDomain picks the product name matching a storefront's language.
func nameForDomain(ident domain.ProductIdentification, host string) string {
	switch host {
	case "www.amazon.sa":
		return ident.Name("ar")
	case "www.amazon.fr":
		return ident.Name("fr")
	default:
		return ident.Name("en")
	}
}

func (s *BotService) sendText(ctx context.Context, chatID int64, text string) {
	if err := s.messenger.SendText(ctx, chatID, text); err != nil {
		log.Printf("[Bot] send message chat=%d: %v", chatID, err)
	}
}
