package reporting

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitizeError(t *testing.T) {
	t.Parallel()

	t.Run("connection reset by peer", func(t *testing.T) {
		t.Parallel()

		err := `fetch failed: failed to send request to stratz: Post "https://api.stratz.com/graphql": read tcp [dead:beef:feb1:d745::c001]:64079->[dead:beef::6811:112a]:443: read: connection reset by peer`
		want := `fetch failed: failed to send request to stratz: Post "https://api.stratz.com/graphql": read tcp <host>-><host>: read: connection reset by peer`
		require.Equal(t, want, sanitizeError(err))
	})
	t.Run("context deadline", func(t *testing.T) {
		t.Parallel()

		err := `Get "https://api.steampowered.com/ISteamUser/GetFriendList/v1/?key=0123456789ABCDEF&relationship=friend&steamid=76561198055517293": context deadline exceeded (Client.Timeout exceeded while awaiting headers)`
		want := `Get "https://api.steampowered.com/ISteamUser/GetFriendList/v1/?key=<key>&relationship=friend&steamid=<id>": context deadline exceeded (Client.Timeout exceeded while awaiting headers)`
		require.Equal(t, want, sanitizeError(err))
	})
	t.Run("misc ipv6", func(t *testing.T) {
		t.Parallel()

		ips := []string{
			`1:2:3:4:5:6:7:8`,
			`1::`,
			`1:2:3:4:5:6:7::`,
			`1::8`,
			`1:2:3:4:5:6::8`,
			`1:2:3:4:5:6::8`,
			`1::7:8`,
			`1:2:3:4:5::7:8`,
			`1:2:3:4:5::8`,
			`1::6:7:8`,
			`1:2:3:4::6:7:8`,
			`1:2:3:4::8`,
			`1::5:6:7:8`,
			`1:2:3::5:6:7:8`,
			`1:2:3::8`,
			`1::4:5:6:7:8`,
			`1:2::4:5:6:7:8`,
			`1:2::8`,
			`1::3:4:5:6:7:8`,
			`1::3:4:5:6:7:8`,
			`1::8`,
			`::2:3:4:5:6:7:8`,
			`::8`,
			`::`,
		}
		for _, ip := range ips {
			t.Run(ip, func(t *testing.T) {
				t.Parallel()

				require.Equal(t, "<host>", sanitizeError(fmt.Sprintf("[%s]:1234", ip)))
			})
		}
	})
	t.Run("ids", func(t *testing.T) {
		t.Parallel()

		cases := []struct {
			error string
			want  string
		}{
			{
				error: `failed to get profile for 95251565: fetch failed: stratz returned status code 500`,
				want:  `failed to get profile for <id>: fetch failed: stratz returned status code 500`,
			},
			{
				error: `invalid account id: 76561198055517293`,
				want:  `invalid account id: <id>`,
			},
			{
				// Short numbers are kept
				error: `steam returned status code 429`,
				want:  `steam returned status code 429`,
			},
			{
				// Only whole numbers
				error: `unexpected response structure: missing data.player (errors: Player abc95251565 not found)`,
				want:  `unexpected response structure: missing data.player (errors: Player abc95251565 not found)`,
			},
		}
		for _, tc := range cases {
			t.Run(tc.error, func(t *testing.T) {
				t.Parallel()

				require.Equal(t, tc.want, sanitizeError(tc.error))
			})
		}
	})
}
