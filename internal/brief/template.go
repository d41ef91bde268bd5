package brief

import "html/template"

var briefTmpl = template.Must(template.New("brief").Parse(briefTemplate))

// briefTemplate is the single fixed layout of the daily email. Section
// order never changes; each section falls back to its placeholder text
// when the source data is missing.
const briefTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
</head>
<body style="margin: 0; padding: 0; font-family: Arial, sans-serif; background-color: #f5f5f5;">
    <div style="display: none; max-height: 0; overflow: hidden;">{{.Preview}}</div>
    <div style="max-width: 500px; margin: 0 auto; background-color: #ffffff; padding: 20px;">
        <div style="font-size: 14px; color: #333; padding-bottom: 10px;">{{.Greeting}}</div>

        <div style="padding: 15px 0; border-bottom: 2px solid #e0e0e0;">
            <table style="width: 100%; border-collapse: collapse;">
                <tr>
                    <td style="width: 33%; vertical-align: top;">
                        {{if .Weather}}<div style="font-size: 14px; font-weight: 500; color: #333;">{{.Weather.City}}</div>{{end}}
                        <div style="font-size: 12px; color: #999; margin-top: 2px;">{{.Date}}</div>
                    </td>
                    <td style="width: 34%; vertical-align: top;">
                        {{if .Weather}}
                        <table style="width: 100%; border-collapse: collapse;">
                            <tr>
                                <td style="vertical-align: middle; text-align: right; padding-right: 8px;">
                                    <div style="font-size: 14px; font-weight: 500; color: #333;">{{.Weather.Temp}}</div>
                                    <div style="font-size: 12px; color: #666; margin-top: 2px;">{{.Weather.Description}}</div>
                                </td>
                                <td style="font-size: 32px; vertical-align: middle; text-align: left; padding-left: 8px;">{{.Weather.Emoji}}</td>
                            </tr>
                        </table>
                        {{else}}
                        <div style="font-size: 12px; color: #c0392b;">Weather data is currently unavailable.</div>
                        {{end}}
                    </td>
                    <td style="width: 33%; text-align: right; vertical-align: top;">
                        <table style="margin-left: auto; border-collapse: collapse;">
                            <tr>
                                <td style="vertical-align: middle; text-align: right; padding-right: 12px;">
                                    <div style="font-size: 14px; font-weight: 500; color: #333;">{{.MoonName}}</div>
                                    <div style="font-size: 12px; color: #666; margin-top: 2px;">Moon Phase</div>
                                </td>
                                <td style="font-size: 32px; vertical-align: middle;">{{.MoonEmoji}}</td>
                            </tr>
                        </table>
                    </td>
                </tr>
            </table>
            <div style="margin-top: 12px; padding-top: 12px; border-top: 1px solid #f0f0f0;">
                <table style="width: 100%; border-collapse: collapse;">
                    <tr>
                        {{if .Weather}}
                        <td style="text-align: left; font-size: 14px; color: #666;">🌅 {{.Weather.Sunrise}}</td>
                        <td style="text-align: right; font-size: 14px; color: #666;">🌇 {{.Weather.Sunset}}</td>
                        {{else}}
                        <td style="text-align: left; font-size: 14px; color: #999;">🌅 —</td>
                        <td style="text-align: right; font-size: 14px; color: #999;">🌇 —</td>
                        {{end}}
                    </tr>
                </table>
            </div>
        </div>

        <div style="padding-top: 15px;">
            <h3 style="margin: 0 0 12px 0; font-size: 16px; color: #333; font-weight: bold;">Today's Forecast</h3>
            {{if and .Weather .Weather.Hours}}
            <table style="width: 100%; border-collapse: collapse;">
                <thead>
                    <tr style="border-bottom: 2px solid #e0e0e0;">
                        <th style="padding: 8px 5px; text-align: left; font-size: 12px; color: #666;">Time</th>
                        <th style="padding: 8px 5px; text-align: center; font-size: 12px; color: #666;">Condition</th>
                        <th style="padding: 8px 5px; text-align: right; font-size: 12px; color: #666;">Temp</th>
                        <th style="padding: 8px 5px; text-align: left; font-size: 12px; color: #666;">Description</th>
                        <th style="padding: 8px 5px; text-align: center; font-size: 12px; color: #666;">Rain</th>
                    </tr>
                </thead>
                <tbody>
                    {{range .Weather.Hours}}
                    <tr style="background-color: {{.RowBG}}; border-bottom: 1px solid #f0f0f0;">
                        <td style="padding: 10px 5px; font-size: 13px; color: #333;">{{.Label}}</td>
                        <td style="padding: 10px 5px; text-align: center; font-size: 24px;">{{.Emoji}}</td>
                        <td style="padding: 10px 5px; text-align: right; font-size: 15px; font-weight: bold; color: #333;">{{.Temp}}</td>
                        <td style="padding: 10px 5px; font-size: 12px; color: #666;">{{.Description}}</td>
                        <td style="padding: 10px 5px; text-align: center; font-size: 12px; color: {{.RainColor}};">{{.Rain}}</td>
                    </tr>
                    {{end}}
                </tbody>
            </table>
            {{else}}
            <div style="font-size: 13px; color: #999;">Hourly forecast is currently unavailable.</div>
            {{end}}
        </div>

        <div style="padding-top: 20px; border-top: 2px solid #e0e0e0; margin-top: 20px;">
            <h3 style="margin: 0 0 10px 0; font-size: 16px; color: #333; font-weight: bold;">📰 Top News</h3>
            {{if .Market}}
            <div style="background-color: #f8f9fa; padding: 10px 15px; border-radius: 6px; margin-bottom: 15px; border-left: 3px solid {{.Market.Color}};">
                <table style="width: 100%; border-collapse: collapse;">
                    <tr>
                        <td style="font-size: 13px; color: #666;">S&amp;P 500</td>
                        <td style="text-align: right; font-size: 15px; font-weight: 600; color: {{.Market.Color}};">{{.Market.Arrow}} {{.Market.Sign}}{{.Market.Percent}}</td>
                    </tr>
                </table>
            </div>
            {{else}}
            <div style="background-color: #f8f9fa; padding: 10px 15px; border-radius: 6px; margin-bottom: 15px;">
                <span style="font-size: 13px; color: #999;">Market data is currently unavailable.</span>
            </div>
            {{end}}
            {{if .News}}
            {{range .News}}
            <div style="padding: 12px 0; border-bottom: 1px solid #f0f0f0;">
                <div style="font-size: 14px; font-weight: 600; color: #333; margin-bottom: 5px;">
                    <a href="{{.URL}}" style="color: #2c3e50; text-decoration: none;">{{.Title}}</a>
                </div>
                {{if .Description}}<div style="font-size: 12px; color: #666; line-height: 1.5;">{{.Description}}</div>{{end}}
                <div style="margin-top: 6px;">
                    <a href="{{.URL}}" style="font-size: 11px; color: #3498db; text-decoration: none;">Read more →</a>
                    <span style="font-size: 11px; color: #999; margin-left: 8px;">• {{.Source}}</span>
                </div>
            </div>
            {{end}}
            {{else}}
            <div style="font-size: 13px; color: #999;">No news available today.</div>
            {{end}}
        </div>

        <div style="padding: 20px 0; border-top: 2px solid #e0e0e0; margin-top: 20px;">
            <h3 style="margin: 0 0 12px 0; font-size: 16px; color: #333; font-weight: bold;">📜 On This Day in History</h3>
            {{if .Fact}}
            <div style="background-color: #f8f9fa; padding: 15px; border-radius: 8px; border-left: 4px solid #9b59b6;">
                <div style="font-size: 18px; font-weight: 600; color: #8e44ad; margin-bottom: 8px;">{{.Fact.Year}}</div>
                <div style="font-size: 13px; color: #555; line-height: 1.6;">{{.Fact.Text}}</div>
                {{if .Fact.URL}}<div style="margin-top: 10px;"><a href="{{.Fact.URL}}" style="font-size: 11px; color: #3498db; text-decoration: none;">Learn more →</a></div>{{end}}
            </div>
            {{else}}
            <div style="font-size: 13px; color: #999;">No historical fact available today.</div>
            {{end}}
        </div>

        <div style="padding: 20px 0; border-top: 2px solid #e0e0e0;">
            <h3 style="margin: 0 0 12px 0; font-size: 16px; color: #333; font-weight: bold;">🎬 Movie Recommendation of the Day</h3>
            {{if .Movie}}
            <div style="background-color: #f8f9fa; padding: 15px; border-radius: 8px; border-left: 4px solid #e74c3c;">
                <table style="width: 100%; border-collapse: collapse;">
                    <tr>
                        {{if .Movie.PosterURL}}
                        <td style="width: 100px; vertical-align: top; padding-right: 15px;">
                            <a href="{{.Movie.InfoURL}}"><img src="{{.Movie.PosterURL}}" alt="{{.Movie.Title}} poster" style="width: 100px; border-radius: 4px;" /></a>
                        </td>
                        {{end}}
                        <td style="vertical-align: top;">
                            <div style="font-size: 16px; font-weight: 600; margin-bottom: 6px;">
                                <a href="{{.Movie.InfoURL}}" style="color: #c0392b; text-decoration: none;">{{.Movie.Title}}</a>
                                <span style="font-size: 13px; color: #999; font-weight: normal;"> ({{.Movie.Year}})</span>
                            </div>
                            <div style="font-size: 12px; color: #666; margin-bottom: 8px;">
                                <span style="margin-right: 10px;">{{.Movie.Stars}} {{.Movie.Rating}}/10</span>
                                <span style="margin-right: 10px;">• {{.Movie.Genres}}</span>
                                <span>• {{.Movie.Runtime}}</span>
                            </div>
                            <div style="font-size: 13px; color: #555; line-height: 1.5; margin-bottom: 10px;">{{.Movie.Overview}}</div>
                            <div><a href="{{.Movie.InfoURL}}" style="font-size: 11px; color: #3498db; text-decoration: none;">View on TMDB →</a></div>
                        </td>
                    </tr>
                </table>
            </div>
            {{else}}
            <div style="font-size: 13px; color: #999;">No movie recommendation today.</div>
            {{end}}
        </div>

        <div style="padding-top: 20px; border-top: 2px solid #e0e0e0;">
            <h3 style="margin: 0 0 8px 0; font-size: 16px; color: #333; font-weight: bold;">💥 XKCD Comic</h3>
            {{if .Comic}}
            <div style="margin: 0 0 12px 0; font-size: 13px; color: #666;">{{.Comic.Label}}</div>
            <div style="text-align: center; background-color: #f8f9fa; padding: 15px; border-radius: 8px;">
                <a href="{{.Comic.Link}}" style="text-decoration: none;">
                    <img src="{{.Comic.ImageURL}}" alt="{{.Comic.AltText}}" style="max-width: 100%; height: auto; border-radius: 4px;" />
                </a>
                <div style="margin-top: 12px; font-size: 14px; font-weight: 600; color: #333;">{{.Comic.Title}}</div>
                <div style="margin-top: 6px; font-size: 11px; color: #666; font-style: italic;">&quot;{{.Comic.AltText}}&quot;</div>
                <div style="margin-top: 8px;"><a href="{{.Comic.Link}}" style="font-size: 11px; color: #3498db; text-decoration: none;">View on xkcd.com →</a></div>
            </div>
            {{else}}
            <div style="font-size: 13px; color: #999;">No comic available today.</div>
            {{end}}
        </div>

        <div style="margin-top: 20px; padding-top: 15px; border-top: 1px solid #e0e0e0; text-align: center; font-size: 11px; color: #999;">
            {{.Sources}}
        </div>
    </div>
</body>
</html>
`
