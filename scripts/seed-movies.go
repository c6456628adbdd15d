package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/binhbb2204/movie-stats-viz/internal/crawler"
	"github.com/binhbb2204/movie-stats-viz/pkg/database"
	"github.com/binhbb2204/movie-stats-viz/pkg/models"
)

// Seeds douban_movies with a fixed sample so the API and dashboard have
// something to show without crawling.
func main() {
	fmt.Println("=== Movie Stats Database Seeder ===")

	godotenv.Load()

	driver := os.Getenv("DB_DRIVER")
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "./data/movies.db"
	}

	if err := database.InitDatabase(driver, dsn); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.Close()

	var count int
	database.DB.QueryRow("SELECT COUNT(*) FROM douban_movies").Scan(&count)
	fmt.Printf("Current movie count: %d\n", count)

	if count >= len(sampleMovies) {
		fmt.Println("Database already seeded. Skipping.")
		return
	}

	store := crawler.NewSQLStore(database.DB, database.Builder())
	saved, err := store.SaveMovies(context.Background(), sampleMovies)
	if err != nil {
		log.Fatal("Failed to save movies:", err)
	}
	fmt.Printf("✓ Seeded %d movies\n", saved)
}

func movie(rank int, id, title, year, country, genre string, rating float64, votes int) models.Movie {
	return models.Movie{
		RankNum:     rank,
		Title:       title,
		Year:        year,
		Country:     country,
		Genre:       genre,
		Rating:      rating,
		RatingCount: votes,
		DoubanID:    id,
		DoubanURL:   "https://movie.douban.com/subject/" + id + "/",
	}
}

var sampleMovies = []models.Movie{
	movie(1, "1292052", "肖申克的救赎", "1994", "美国", "犯罪 剧情", 9.7, 3150000),
	movie(2, "1291546", "霸王别姬", "1993", "中国大陆 中国香港", "剧情 爱情 同性", 9.6, 2330000),
	movie(3, "1292720", "阿甘正传", "1994", "美国", "剧情 爱情", 9.5, 2370000),
	movie(4, "1295644", "这个杀手不太冷", "1994", "法国 美国", "剧情 动作 犯罪", 9.4, 2500000),
	movie(5, "1292063", "美丽人生", "1997", "意大利", "剧情 喜剧 爱情 战争", 9.5, 1450000),
	movie(6, "1292722", "泰坦尼克号", "1997", "美国 墨西哥", "剧情 爱情 灾难", 9.5, 2300000),
	movie(7, "1291561", "千与千寻", "2001", "日本", "剧情 动画 奇幻", 9.4, 2430000),
	movie(8, "1295124", "辛德勒的名单", "1993", "美国", "剧情 历史 战争", 9.5, 1200000),
	movie(9, "3541415", "盗梦空间", "2010", "美国 英国", "剧情 科幻 悬疑 冒险", 9.4, 2250000),
	movie(10, "3011091", "忠犬八公的故事", "2009", "美国 英国", "剧情", 9.4, 1500000),
	movie(11, "1889243", "星际穿越", "2014", "美国 英国 加拿大", "剧情 科幻 冒险", 9.4, 1950000),
	movie(12, "1292064", "楚门的世界", "1998", "美国", "剧情 科幻", 9.4, 1800000),
	movie(13, "1291549", "放牛班的春天", "2004", "法国 瑞士 德国", "剧情 音乐", 9.3, 1350000),
	movie(14, "1292001", "海上钢琴师", "1998", "意大利", "剧情 音乐", 9.3, 1800000),
	movie(15, "3793023", "三傻大闹宝莱坞", "2009", "印度", "剧情 喜剧 爱情", 9.2, 1880000),
	movie(16, "1291841", "教父", "1972", "美国", "剧情 犯罪", 9.3, 950000),
	movie(17, "1307914", "无间道", "2002", "中国香港", "剧情 犯罪 惊悚", 9.3, 1350000),
	movie(18, "1291843", "机器人总动员", "2008", "美国", "科幻 动画 冒险", 9.3, 1300000),
	movie(19, "1292213", "大话西游之大圣娶亲", "1995", "中国香港 中国大陆", "喜剧 爱情 奇幻 古装", 9.2, 1500000),
	movie(20, "1291858", "蝙蝠侠：黑暗骑士", "2008", "美国 英国", "剧情 动作 科幻 犯罪", 9.2, 900000),
}
