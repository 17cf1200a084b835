package migration

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	lorem "github.com/HandmadeNetwork/golorem"
	"github.com/inkwell-net/inkwell/src/auth"
	"github.com/inkwell-net/inkwell/src/blogdata"
	"github.com/inkwell-net/inkwell/src/config"
	"github.com/inkwell-net/inkwell/src/db"
	"github.com/inkwell-net/inkwell/src/models"
	"github.com/inkwell-net/inkwell/src/moderation"
	"github.com/inkwell-net/inkwell/src/parsing"
	"github.com/inkwell-net/inkwell/src/utils"
	"github.com/jackc/pgx/v5/tracelog"
)

// Creates only what's necessary to get the API running. Not really very
// useful for local dev on its own; sample data makes things a lot better.
func BareMinimumSeed() {
	Migrate(LatestVersion())

	ctx := context.Background()
	conn := db.NewConnWithConfig(config.PostgresConfig{
		LogLevel: tracelog.LogLevelWarn,
	})
	defer conn.Close(ctx)

	fmt.Println("Creating admin user (\"admin\"/\"password\")...")
	seedUser(ctx, conn, models.User{Username: "admin", Email: "admin@inkwell.net", IsStaff: true})
}

// Seeds the database with sample data for local dev.
func SampleSeed() {
	BareMinimumSeed()

	ctx := context.Background()
	conn := db.NewConnWithConfig(config.PostgresConfig{
		LogLevel: tracelog.LogLevelWarn,
	})
	defer conn.Close(ctx)

	fmt.Println("Creating normal users (all with password \"password\")...")
	alice := seedUser(ctx, conn, models.User{Username: "alice", Name: "Alice"})
	bob := seedUser(ctx, conn, models.User{Username: "bob", Name: "Bob"})
	charlie := seedUser(ctx, conn, models.User{Username: "charlie", Name: "Charlie"})

	fmt.Println("Creating a spammer...")
	spammer := seedUser(ctx, conn, models.User{Username: "spam", Name: "Hot singletons in your local area", Status: models.UserStatusBanned})

	store := blogdata.NewPSQLStore(conn)
	users := []*models.User{alice, bob, charlie}

	fmt.Println("Creating sample posts and comments...")
	for i := 0; i < 5; i++ {
		author := users[rand.Intn(len(users))]
		post := seedPost(ctx, store, author)

		var approved []*models.Comment
		for c := 0; c < rand.Intn(8); c++ {
			commenter := users[rand.Intn(len(users))]

			var parentID *int
			if len(approved) > 0 && randomBool() {
				parentID = &approved[rand.Intn(len(approved))].ID
			}

			text := lorem.Sentence(3, 20)
			comment, err := moderation.CreateComment(ctx, store, post.ID, commenter.ID, text, parsing.ParseMarkdown(text, parsing.RealMarkdown), parentID)
			if err != nil {
				panic(err)
			}

			// Leave some comments pending so the moderation queue has
			// something in it.
			switch rand.Intn(3) {
			case 0:
			case 1:
				utils.Must(moderation.SetApproval(ctx, store, author.ID, comment.ID, false))
			default:
				utils.Must(moderation.SetApproval(ctx, store, author.ID, comment.ID, true))
				approved = append(approved, comment)
			}
		}

		spam, err := moderation.CreateComment(ctx, store, post.ID, spammer.ID, "BUY NOW: "+lorem.Url(), "", nil)
		if err != nil {
			panic(err)
		}
		utils.Must(moderation.SetApproval(ctx, store, author.ID, spam.ID, false))
	}
}

func seedUser(ctx context.Context, conn db.ConnOrTx, input models.User) *models.User {
	user, err := db.QueryOne[models.User](ctx, conn,
		`
		INSERT INTO inkwell_user (username, password, email, name, is_staff, status)
		VALUES ($1, '', $2, $3, $4, $5)
		RETURNING id, username, password, email, name, is_staff, status, date_joined
		`,
		input.Username,
		utils.OrDefault(input.Email, fmt.Sprintf("%s@example.com", input.Username)),
		utils.OrDefault(input.Name, input.Username),
		input.IsStaff,
		utils.OrDefault(input.Status, models.UserStatusActive),
	)
	if err != nil {
		panic(err)
	}
	err = auth.SetPassword(ctx, conn, user.ID, "password")
	if err != nil {
		panic(err)
	}

	return user
}

func seedPost(ctx context.Context, store blogdata.Store, author *models.User) *models.Post {
	var paragraphs []string
	for i := 0; i < 1+rand.Intn(3); i++ {
		paragraphs = append(paragraphs, lorem.Paragraph(2, 5))
	}
	content := strings.Join(paragraphs, "\n\n")

	post, err := store.CreatePost(ctx, author.ID, strings.Title(lorem.Sentence(2, 6)), content, parsing.ParseMarkdown(content, parsing.RealMarkdown))
	if err != nil {
		panic(err)
	}
	return post
}

func randomBool() bool {
	return rand.Intn(2) == 1
}
