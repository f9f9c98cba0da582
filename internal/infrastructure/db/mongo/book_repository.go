package mongo

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shelfmark/book-tracker/internal/core/domain"
	"github.com/shelfmark/book-tracker/internal/core/ports"
)

const booksCollection = "books"

// MongoBookRepository persists saved books. Every query carries the owner's
// user id, so books are invisible outside their owner's list.
type MongoBookRepository struct {
	coll *mongo.Collection
}

func NewBookRepository(db *mongo.Database) *MongoBookRepository {
	return &MongoBookRepository{coll: db.Collection(booksCollection)}
}

type mongoBook struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	User        primitive.ObjectID `bson:"user"`
	Title       string             `bson:"title"`
	Authors     []string           `bson:"authors"`
	Description string             `bson:"description,omitempty"`
	Rating      *float64           `bson:"rating,omitempty"`
	PageCount   *int               `bson:"page_count,omitempty"`
	ISBN        string             `bson:"isbn,omitempty"`
	Notes       string             `bson:"notes,omitempty"`
	Thumbnail   string             `bson:"thumbnail,omitempty"`
	InfoLink    string             `bson:"info_link,omitempty"`
	Genre       string             `bson:"genre,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (r *MongoBookRepository) Create(ctx context.Context, book *domain.Book) (*domain.Book, error) {
	owner, err := primitive.ObjectIDFromHex(book.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid owner id: %w", err)
	}

	now := time.Now().UTC()
	doc := mongoBook{
		User:        owner,
		Title:       book.Title,
		Authors:     book.Authors,
		Description: book.Description,
		Rating:      book.Rating,
		PageCount:   book.PageCount,
		ISBN:        book.ISBN,
		Notes:       book.Notes,
		Thumbnail:   book.Thumbnail,
		InfoLink:    book.InfoLink,
		Genre:       book.Genre,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateBook
		}
		return nil, fmt.Errorf("insert book: %w", err)
	}

	id, _ := res.InsertedID.(primitive.ObjectID)
	doc.ID = id
	return doc.toDomain(), nil
}

func (r *MongoBookRepository) List(ctx context.Context, filter ports.ListBooksFilter) ([]*domain.Book, error) {
	owner, err := primitive.ObjectIDFromHex(filter.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid owner id: %w", err)
	}

	query := bson.M{"user": owner}
	if filter.Author != "" {
		query["authors.0"] = bson.M{
			"$regex":   regexp.QuoteMeta(filter.Author),
			"$options": "i",
		}
	}

	cursor, err := r.coll.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer cursor.Close(ctx)

	books := make([]*domain.Book, 0)
	for cursor.Next(ctx) {
		var mb mongoBook
		if err := cursor.Decode(&mb); err != nil {
			return nil, fmt.Errorf("decode book: %w", err)
		}
		books = append(books, mb.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

func (r *MongoBookRepository) Delete(ctx context.Context, userID, bookID string) error {
	oid, err := primitive.ObjectIDFromHex(bookID)
	if err != nil {
		return domain.ErrInvalidBookID
	}
	owner, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return fmt.Errorf("invalid owner id: %w", err)
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid, "user": owner})
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	if res.DeletedCount == 0 {
		// Missing and not-owned are indistinguishable on purpose.
		return domain.ErrBookNotFound
	}
	return nil
}

func (mb *mongoBook) toDomain() *domain.Book {
	return &domain.Book{
		ID:          mb.ID.Hex(),
		UserID:      mb.User.Hex(),
		Title:       mb.Title,
		Authors:     mb.Authors,
		Description: mb.Description,
		Rating:      mb.Rating,
		PageCount:   mb.PageCount,
		ISBN:        mb.ISBN,
		Notes:       mb.Notes,
		Thumbnail:   mb.Thumbnail,
		InfoLink:    mb.InfoLink,
		Genre:       mb.Genre,
		CreatedAt:   mb.CreatedAt,
		UpdatedAt:   mb.UpdatedAt,
	}
}
