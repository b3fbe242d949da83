package bot

import (
	"context"
	"strconv"
	"strings"

	"notibot-be/internal/chat"
	"notibot-be/internal/dto"
	"notibot-be/internal/entity"
	"notibot-be/internal/pkg/boterr"
	"notibot-be/internal/pkg/serverutils"
)

const currencyBase = "RUB"

var currencyTargets = []string{"USD", "EUR", "GBP", "CNY"}

func (r *Router) handleWeather(ctx context.Context, ev chat.Event, city string) error {
	weather, err := r.weather.Current(ctx, city)
	if err != nil {
		return err
	}
	return r.send(ctx, ev, chat.WithKeyboard(weatherReplyText(weather),
		chat.Keyboard{backRow(cbMainMenu)}))
}

func (r *Router) handleCurrency(ctx context.Context, ev chat.Event) error {
	rates, err := r.rates.Latest(ctx, currencyBase)
	if err != nil {
		return err
	}
	return r.send(ctx, ev, chat.WithKeyboard(
		currencyReplyText(currencyBase, currencyTargets, rates),
		chat.Keyboard{backRow(cbMainMenu)}))
}

func (r *Router) handleConvert(ctx context.Context, ev chat.Event) error {
	if len(ev.Args) != 3 {
		return boterr.Validation(msgConvertUsage)
	}

	amount, err := strconv.ParseFloat(ev.Args[0], 64)
	if err != nil {
		return boterr.Validation("The amount must be a number")
	}

	req := dto.ConvertRequest{
		Amount: amount,
		From:   strings.ToUpper(ev.Args[1]),
		To:     strings.ToUpper(ev.Args[2]),
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return boterr.Validation(msgConvertUsage)
	}

	rates, err := r.rates.Latest(ctx, req.From)
	if err != nil {
		return err
	}
	rate, ok := rates[req.To]
	if !ok {
		return boterr.NotFound("Currency " + req.To + " not found")
	}

	return r.send(ctx, ev, chat.Text(convertReplyText(req.Amount, req.From, req.To, rate)))
}

func (r *Router) handleStats(ctx context.Context, ev chat.Event, user *entity.User) error {
	counts, err := r.statsService.Counts(ctx, user.Id)
	if err != nil {
		return err
	}
	return r.send(ctx, ev, chat.WithKeyboard(statsReplyText(counts),
		chat.Keyboard{backRow(cbMainMenu)}))
}
