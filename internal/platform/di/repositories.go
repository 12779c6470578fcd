// internal/platform/di/repositories.go
package di

import (
	"context"

	"cloud.google.com/go/firestore"
	"go.mongodb.org/mongo-driver/mongo"

	fs "github.com/MTalha250/Varzan/internal/adapters/out/firestore"
	"github.com/MTalha250/Varzan/internal/adapters/out/memory"
	mongorepo "github.com/MTalha250/Varzan/internal/adapters/out/mongo"
	admindom "github.com/MTalha250/Varzan/internal/domain/admin"
	catdom "github.com/MTalha250/Varzan/internal/domain/category"
	contactdom "github.com/MTalha250/Varzan/internal/domain/contact"
	orderdom "github.com/MTalha250/Varzan/internal/domain/order"
	paymentdom "github.com/MTalha250/Varzan/internal/domain/payment"
	productdom "github.com/MTalha250/Varzan/internal/domain/product"
	projectdom "github.com/MTalha250/Varzan/internal/domain/project"
	testimonialdom "github.com/MTalha250/Varzan/internal/domain/testimonial"
	appcfg "github.com/MTalha250/Varzan/internal/infra/config"
)

// Repositories はストア実装に依存しないリポジトリ一式
type Repositories struct {
	Products     productdom.Repository
	Categories   catdom.Repository
	Contacts     contactdom.Repository
	Testimonials testimonialdom.Repository
	Projects     projectdom.Repository
	Admins       admindom.Repository
	Orders       orderdom.Repository
	Payments     paymentdom.Repository
}

// OpenRepositories は STORE_DRIVER に応じてクライアントを開きリポジトリを返す。
// 返した Infra の Close は呼び出し側の責務。
func OpenRepositories(ctx context.Context, cfg *appcfg.Config) (Repositories, *Infra, error) {
	inf, err := NewInfra(ctx, cfg)
	if err != nil {
		return Repositories{}, nil, err
	}
	switch {
	case inf.Firestore != nil:
		return firestoreRepositories(inf.Firestore.Client), inf, nil
	case inf.Mongo != nil:
		return mongoRepositories(inf.Mongo.Database), inf, nil
	default:
		return MemoryRepositories(memory.NewStore()), inf, nil
	}
}

func firestoreRepositories(client *firestore.Client) Repositories {
	return Repositories{
		Products:     fs.NewProductRepositoryFS(client),
		Categories:   fs.NewCategoryRepositoryFS(client),
		Contacts:     fs.NewContactRepositoryFS(client),
		Testimonials: fs.NewTestimonialRepositoryFS(client),
		Projects:     fs.NewProjectRepositoryFS(client),
		Admins:       fs.NewAdminRepositoryFS(client),
		Orders:       fs.NewOrderRepositoryFS(client),
		Payments:     fs.NewPaymentRepositoryFS(client),
	}
}

func mongoRepositories(db *mongo.Database) Repositories {
	return Repositories{
		Products:     mongorepo.NewProductRepositoryMongo(db),
		Categories:   mongorepo.NewCategoryRepositoryMongo(db),
		Contacts:     mongorepo.NewContactRepositoryMongo(db),
		Testimonials: mongorepo.NewTestimonialRepositoryMongo(db),
		Projects:     mongorepo.NewProjectRepositoryMongo(db),
		Admins:       mongorepo.NewAdminRepositoryMongo(db),
		Orders:       mongorepo.NewOrderRepositoryMongo(db),
		Payments:     mongorepo.NewPaymentRepositoryMongo(db),
	}
}

// MemoryRepositories はプロセス内ストア（ローカル開発・テスト用）
func MemoryRepositories(s *memory.Store) Repositories {
	return Repositories{
		Products:     s.Products,
		Categories:   s.Categories,
		Contacts:     s.Contacts,
		Testimonials: s.Testimonials,
		Projects:     s.Projects,
		Admins:       s.Admins,
		Orders:       s.Orders,
		Payments:     s.Payments,
	}
}
