// Package bot runs the Discord front end: one slash command that analyzes
// a GitHub repository and replies with embeds. Each invocation runs an
// independent pipeline instance; no state is shared between requests.
package bot

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"

	"github.com/kevinmichaelchen/larp-watch/internal/config"
	"github.com/kevinmichaelchen/larp-watch/internal/errs"
	"github.com/kevinmichaelchen/larp-watch/internal/github"
	"github.com/kevinmichaelchen/larp-watch/internal/logging"
	"github.com/kevinmichaelchen/larp-watch/internal/pipeline"
)

const commandName = "analyze"

type Bot struct {
	session *discordgo.Session
	cfg     *config.Config
	logger  *log.Logger
}

func New(cfg *config.Config, logger *log.Logger) (*Bot, error) {
	if cfg.DiscordToken == "" {
		return nil, fmt.Errorf("DISCORD_TOKEN is not set")
	}

	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("creating Discord session: %w", err)
	}

	return &Bot{session: session, cfg: cfg, logger: logger}, nil
}

// Run connects to the gateway, registers the slash command, and serves
// interactions until ctx is canceled.
func (b *Bot) Run(ctx context.Context) error {
	b.session.AddHandler(b.onReady)
	b.session.AddHandler(b.onInteraction)

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("opening Discord gateway: %w", err)
	}
	defer func() { _ = b.session.Close() }()

	command := &discordgo.ApplicationCommand{
		Name:        commandName,
		Description: "Analyze a GitHub repository for crypto project due diligence",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "github_url",
				Description: "GitHub repository URL",
				Required:    true,
			},
		},
	}
	if _, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, "", command); err != nil {
		return fmt.Errorf("registering /%s: %w", commandName, err)
	}
	b.logger.Info("bot ready", "command", "/"+commandName)

	<-ctx.Done()
	return nil
}

func (b *Bot) onReady(_ *discordgo.Session, r *discordgo.Ready) {
	b.logger.Info("connected to Discord", "user", r.User.Username)
}

func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	data := i.ApplicationCommandData()
	if data.Name != commandName {
		return
	}
	rawURL := data.Options[0].StringValue()

	// Reject bad input before deferring so the error can stay ephemeral.
	if _, err := github.ParseRepoURL(rawURL); err != nil {
		_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content: "Please provide a valid GitHub repository URL.",
				Flags:   discordgo.MessageFlagsEphemeral,
			},
		})
		return
	}

	// Analysis takes a while; defer, then follow up.
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}); err != nil {
		b.logger.Error("could not defer interaction", "err", err)
		return
	}

	go b.analyze(i.Interaction, rawURL)
}

func (b *Bot) analyze(interaction *discordgo.Interaction, rawURL string) {
	ctx := logging.WithLogger(context.Background(), b.logger)

	res, err := pipeline.Run(ctx, b.cfg, rawURL)
	if err != nil {
		b.logger.Error("analysis failed", "url", rawURL, "err", err)
		_, _ = b.session.FollowupMessageCreate(interaction, true, &discordgo.WebhookParams{
			Content: fmt.Sprintf("❌ Analysis failed: %s.", errs.Kind(err)),
		})
		return
	}

	_, err = b.session.FollowupMessageCreate(interaction, true, &discordgo.WebhookParams{
		Embeds: BuildEmbeds(rawURL, res),
	})
	if err != nil {
		b.logger.Error("could not send analysis", "url", rawURL, "err", err)
	}
}
